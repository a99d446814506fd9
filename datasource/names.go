package datasource

import (
	"slices"

	"github.com/maruel/natural"
)

func sortNames(names []string) {
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
}
