package interval

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinFreeOnEmptyTreeIsZero(t *testing.T) {
	tree := New()
	assert.Equal(t, 0, tree.MinFree())
}

func TestAddCoalescesNeighbors(t *testing.T) {
	tree := New()
	tree.Add(5)
	tree.Add(7)
	tree.Add(6)
	intervals := tree.Intervals()
	found := false
	for _, iv := range intervals {
		if iv[0] == 5 && iv[1] == 7 {
			found = true
		}
	}
	assert.True(t, found, "expected coalesced interval [5,7], got %v", intervals)
}

func TestRemoveSplitsInterval(t *testing.T) {
	tree := New()
	tree.Add(5)
	tree.Add(6)
	tree.Add(7)
	tree.Remove(6)

	intervals := tree.Intervals()
	var got [][2]int
	for _, iv := range intervals {
		if iv[0] != -1 {
			got = append(got, iv)
		}
	}
	assert.ElementsMatch(t, [][2]int{{5, 5}, {7, 7}}, got)
}

func TestRemoveShrinksFromEnds(t *testing.T) {
	tree := New()
	tree.Add(1)
	tree.Add(2)
	tree.Add(3)
	tree.Remove(1)
	tree.Remove(3)

	var got [][2]int
	for _, iv := range tree.Intervals() {
		if iv[0] != -1 {
			got = append(got, iv)
		}
	}
	assert.Equal(t, [][2]int{{2, 2}}, got)
}

func TestRemoveOfUnclaimedValuePanics(t *testing.T) {
	tree := New()
	assert.Panics(t, func() { tree.Remove(3) })
}

func TestAddOfCoveredValuePanics(t *testing.T) {
	tree := New()
	tree.Add(3)
	assert.Panics(t, func() { tree.Add(3) })
}

func TestMinFreeTracksSmallestAllocation(t *testing.T) {
	tree := New()
	tree.Add(0)
	tree.Add(1)
	tree.Add(2)
	assert.Equal(t, 3, tree.MinFree())
	tree.Remove(0)
	assert.Equal(t, 0, tree.MinFree())
}

// TestRandomAddRemoveAgreesWithReference runs a long random sequence of
// Add/Remove against a plain map-based reference implementation of "which
// integers are claimed", comparing MinFree after every step.
func TestRandomAddRemoveAgreesWithReference(t *testing.T) {
	tree := New()
	used := map[int]bool{}
	const universe = 64

	rng := rand.New(rand.NewSource(1))
	for step := 0; step < 2000; step++ {
		x := rng.Intn(universe)
		if used[x] {
			tree.Remove(x)
			used[x] = false
		} else {
			tree.Add(x)
			used[x] = true
		}

		expected := universe
		for i := 0; i < universe; i++ {
			if !used[i] {
				expected = i
				break
			}
		}
		require.Equal(t, expected, minOrUniverse(tree.MinFree(), universe), "step %d, x=%d", step, x)
	}
}

func minOrUniverse(v, universe int) int {
	if v >= universe {
		return universe
	}
	return v
}
