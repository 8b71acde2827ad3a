package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CurlyQuotes(t *testing.T) {
	clauses := Normalize("You may play that card. It’s exiled face down.")
	require.Len(t, clauses, 2)
	assert.Equal(t, "it's exiled face down", clauses[1].Text)
}

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	clauses := Normalize("Draw   two    cards.")
	require.Len(t, clauses, 1)
	assert.Equal(t, "draw two cards", clauses[0].Text)
}

func TestNormalize_SplitsOnTerminators(t *testing.T) {
	clauses := Normalize("Exile the top card of your library; you may play it.")
	require.Len(t, clauses, 2)
	assert.Equal(t, "exile the top card of your library", clauses[0].Text)
	assert.Equal(t, "you may play it", clauses[1].Text)
}

func TestNormalize_PreservesOriginalCase(t *testing.T) {
	clauses := Normalize("Target opponent draws a card.")
	require.Len(t, clauses, 1)
	assert.Equal(t, "Target opponent draws a card", clauses[0].Original)
	assert.Equal(t, "target opponent draws a card", clauses[0].Text)
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Nil(t, Normalize(""))
	assert.Nil(t, Normalize("   "))
}

func TestNormalize_Idempotent(t *testing.T) {
	text := "Exile the top card of your library. You’re able to play it."
	once := Normalize(text)
	reconstructed := once[0].Original + ". " + once[1].Original + "."
	twice := Normalize(reconstructed)
	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, once[i].Text, twice[i].Text)
	}
}
