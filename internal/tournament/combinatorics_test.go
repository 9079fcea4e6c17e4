package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func namesOf(progs []Program) []string {
	names := make([]string, len(progs))
	for i, p := range progs {
		names[i] = p.BaseName
	}
	return names
}

func TestCombinationsSizeTwoOfThree(t *testing.T) {
	progs := []Program{{BaseName: "a"}, {BaseName: "b"}, {BaseName: "c"}}
	combos := combinations(progs, 2)
	assert.Len(t, combos, 3)
}

func TestPermutationsOfPairHasTwoOrderings(t *testing.T) {
	progs := []Program{{BaseName: "a"}, {BaseName: "b"}}
	perms := permutations(progs)
	assert.Len(t, perms, 2)
	assert.ElementsMatch(t, []string{"a", "b"}, namesOf(perms[0]))
}

func TestMatchUpsCountMatchesPermutationsTimesRematches(t *testing.T) {
	progs := []Program{{BaseName: "x"}, {BaseName: "y"}}
	ups := matchUps(progs, 2, 2)
	// P(2,2) = 2 orderings, times R=2 rematches = 4.
	assert.Len(t, ups, 4)
}
