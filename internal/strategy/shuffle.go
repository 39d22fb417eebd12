package strategy

// Source supplies uniform random integers in [0, n). *math/rand.Rand
// satisfies it.
type Source interface {
	Intn(n int) int
}

// Shuffle returns a Fisher-Yates permutation of items drawn from src.
// The input slice is left untouched.
func Shuffle[T any](items []T, src Source) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
