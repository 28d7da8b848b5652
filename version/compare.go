// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"fmt"
	"strings"
)

// Compare orders two semantic version strings.
// Returns 1 if a > b, -1 if a < b, and 0 when they are equal.
// A leading "v" is tolerated on either argument.
func Compare(a, b string) (int, error) {
	parse := func(s string) (parts [3]int, err error) {
		_, err = fmt.Sscanf(strings.TrimPrefix(s, "v"), "%d.%d.%d", &parts[0], &parts[1], &parts[2])
		return
	}

	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		switch {
		case av[i] > bv[i]:
			return 1, nil
		case av[i] < bv[i]:
			return -1, nil
		}
	}

	return 0, nil
}
