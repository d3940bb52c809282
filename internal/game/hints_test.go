package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wordgamelab/wordgame-backend/internal"
)

func TestRevealHint(t *testing.T) {
	w := testWord()
	assert.Equal(t, "c", RevealHint(internal.HintStartingLetter, &w))
	assert.Equal(t, "3", RevealHint(internal.HintWordLength, &w))
	assert.Equal(t, "pet", RevealHint(internal.HintBannedWord, &w))
}

func TestHintReveals(t *testing.T) {
	r := NewRound(1, testWord(), 60)
	assert.Nil(t, HintReveals(r))

	require.NoError(t, UseHint(r, internal.HintStartingLetter))
	require.NoError(t, UseHint(r, internal.HintWordLength))

	reveals := HintReveals(r)
	assert.Equal(t, map[internal.Hint]string{
		internal.HintStartingLetter: "c",
		internal.HintWordLength:     "3",
	}, reveals)
}

func TestSolverContext(t *testing.T) {
	r := NewRound(2, testWord(), 60)
	require.NoError(t, SetDescription(r, "a furry home companion"))

	assert.Equal(t, "", SolverContext(r))

	_, err := AttemptGuess(r, "dog")
	require.NoError(t, err)
	assert.Equal(t,
		"These are words that have been guessed but are wrong: dog.",
		SolverContext(r))

	require.NoError(t, UseHint(r, internal.HintStartingLetter))
	_, err = AttemptGuess(r, "fox")
	require.NoError(t, err)

	assert.Equal(t,
		"The word starts with the letter: c. "+
			"These are words that have been guessed but are wrong: dog, fox.",
		SolverContext(r))
}
