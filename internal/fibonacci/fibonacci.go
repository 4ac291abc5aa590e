package fibonacci

// MaxExactIndex is the largest index whose Fibonacci number fits in a uint64.
const MaxExactIndex = 93

// Dynamic returns F(n) using the two-variable dynamic programming recurrence.
// It is the serial baseline.
func Dynamic(n int) uint64 {
	if n <= 0 {
		return 0
	}
	var a, b uint64 = 0, 1
	for i := 1; i < n; i++ {
		a, b = b, a+b
	}
	return b
}

// Sequence returns F(0), F(1), ..., F(n). A negative n yields an empty slice.
func Sequence(n int) []uint64 {
	if n < 0 {
		return []uint64{}
	}
	seq := make([]uint64, n+1)
	if n >= 1 {
		seq[1] = 1
	}
	for i := 2; i <= n; i++ {
		seq[i] = seq[i-1] + seq[i-2]
	}
	return seq
}

// Chunk returns F(start), ..., F(end). It recomputes the sequence from F(0)
// and F(1) and discards indices below start, so the result depends on
// nothing but its arguments. An empty range yields an empty slice.
func Chunk(start, end int) []uint64 {
	if start < 0 {
		start = 0
	}
	if end < start {
		return []uint64{}
	}
	out := make([]uint64, 0, end-start+1)
	var a, b uint64 = 0, 1
	for i := 0; i <= end; i++ {
		if i >= start {
			out = append(out, a)
		}
		a, b = b, a+b
	}
	return out
}

// ChunkDoubling returns the same values as Chunk but seeds F(start) and
// F(start+1) by fast doubling instead of walking the prefix.
func ChunkDoubling(start, end int) []uint64 {
	if start < 0 {
		start = 0
	}
	if end < start {
		return []uint64{}
	}
	out := make([]uint64, 0, end-start+1)
	a, b := pair(uint64(start))
	for i := start; i <= end; i++ {
		out = append(out, a)
		a, b = b, a+b
	}
	return out
}

// pair returns F(k) and F(k+1) using the doubling identities
//
//	F(2m)   = F(m) * (2F(m+1) - F(m))
//	F(2m+1) = F(m)^2 + F(m+1)^2
//
// evaluated from the most significant bit of k down.
func pair(k uint64) (uint64, uint64) {
	var a, b uint64 = 0, 1
	for bit := 63; bit >= 0; bit-- {
		c := a * (2*b - a)
		d := a*a + b*b
		if (k>>uint(bit))&1 == 0 {
			a, b = c, d
		} else {
			a, b = d, c+d
		}
	}
	return a, b
}
