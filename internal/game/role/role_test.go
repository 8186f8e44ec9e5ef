package role

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNightOrder(t *testing.T) {
	t.Parallel()

	want := []Role{Werewolf, Minion, Mason, Seer, Robber, Troublemaker, Drunk, Insomniac}
	assert.Equal(t, want, NightOrder())
}

func TestWakeOrder(t *testing.T) {
	t.Parallel()

	_, wakes := Villager.WakeOrder()
	assert.False(t, wakes)

	_, wakes = Hunter.WakeOrder()
	assert.False(t, wakes)

	wolf, wakes := Werewolf.WakeOrder()
	require.True(t, wakes)
	insomniac, _ := Insomniac.WakeOrder()
	assert.Less(t, wolf, insomniac)
}

func TestParse(t *testing.T) {
	t.Parallel()

	r, err := Parse("Seer")
	require.NoError(t, err)
	assert.Equal(t, Seer, r)

	_, err = Parse("Doppelganger")
	assert.Error(t, err)
}

func TestBuildDeck(t *testing.T) {
	t.Parallel()

	deck, err := BuildDeck(map[string]int{
		"Werewolf": 2,
		"Villager": 3,
		"Seer":     1,
	})
	require.NoError(t, err)
	assert.Len(t, deck, 6)
	assert.Equal(t, map[string]int{"Werewolf": 2, "Villager": 3, "Seer": 1}, deck.Counts())
}

func TestBuildDeck_UnknownRole(t *testing.T) {
	t.Parallel()

	_, err := BuildDeck(map[string]int{"Dragon": 1})
	assert.Error(t, err)

	_, err = BuildDeck(map[string]int{"Villager": -1})
	assert.Error(t, err)
}

func TestDeck_Shuffle(t *testing.T) {
	t.Parallel()

	counts := map[string]int{"Werewolf": 2, "Villager": 4, "Seer": 1, "Robber": 1}
	deck, err := BuildDeck(counts)
	require.NoError(t, err)

	deck.Shuffle(rand.New(rand.NewPCG(1, 2)))

	// Shuffling relocates tokens but conserves the multiset
	assert.Equal(t, counts, deck.Counts())

	// Same seed produces the same permutation
	other, err := BuildDeck(counts)
	require.NoError(t, err)
	other.Shuffle(rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, deck, other)
}

func TestDeck_Schedule(t *testing.T) {
	t.Parallel()

	deck, err := BuildDeck(map[string]int{
		"Insomniac": 1,
		"Werewolf":  2,
		"Villager":  2,
		"Seer":      1,
		"Hunter":    1,
	})
	require.NoError(t, err)

	// Schedule is deduplicated, wake-ordered, and only contains dealt night roles
	assert.Equal(t, []Role{Werewolf, Seer, Insomniac}, deck.Schedule())
}
