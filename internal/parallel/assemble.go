package parallel

// Assemble concatenates per-chunk results in the order given and truncates
// the output to n+1 elements, the size of the domain [0, n].
//
// Parts must already be in ascending chunk order; Assemble never reorders or
// deduplicates. A negative n yields an empty result.
func Assemble[T any](parts [][]T, n int) []T {
	if n < 0 {
		return []T{}
	}
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]T, 0, min(total, n+1))
	for _, p := range parts {
		out = append(out, p...)
		if len(out) >= n+1 {
			return out[:n+1]
		}
	}
	return out
}
