// Package fibonacci computes Fibonacci sequences with unsigned 64-bit
// arithmetic, serially and by independent chunks.
//
// # Overflow
//
// All values are uint64. F(93) is the largest Fibonacci number that fits;
// every later index wraps modulo 2^64. The wrap is not detected. Every
// strategy wraps identically because the recurrences only use addition,
// subtraction and multiplication, so serial and parallel results remain
// comparable past index 93 even though they are no longer true Fibonacci
// numbers.
//
// # Chunked evaluation
//
// A chunk [start, end] is evaluated without reference to any other chunk.
// The iterative strategy recomputes the prefix from F(0), so chunk cost is
// O(end) and total parallel work is superlinear in the worker count. The
// doubling strategy seeds F(start) in O(log start) and only iterates across
// the chunk itself.
package fibonacci
