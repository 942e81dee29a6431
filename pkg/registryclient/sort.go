package registryclient

import (
	"cmp"
	"slices"
)

// SortPage re-sorts an already fetched page in place by key. The sort is
// stable, so rows with equal keys keep the server order.
func SortPage[T any, K cmp.Ordered](rows []T, key func(T) K, desc bool) {
	slices.SortStableFunc(rows, func(a, b T) int {
		c := cmp.Compare(key(a), key(b))
		if desc {
			return -c
		}
		return c
	})
}
