package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeltLookupNextRank(t *testing.T) {
	cur, next, ok := BeltLookup("Verde")
	require.True(t, ok)
	assert.Equal(t, "Verde", cur.Belt)
	assert.Equal(t, "6º Gup", cur.Grade)
	assert.Equal(t, "Verde Punta Azul", next.Belt)
	assert.Equal(t, "5º Gup", next.Grade)
}

func TestBeltLookupCaseInsensitive(t *testing.T) {
	cur, next, ok := BeltLookup("  blanco punta amarilla ")
	require.True(t, ok)
	assert.Equal(t, "Blanco Punta Amarilla", cur.Belt)
	assert.Equal(t, "Amarillo", next.Belt)
}

func TestBeltLookupUnknownBelt(t *testing.T) {
	cur, next, ok := BeltLookup("Cinturón Inventado")
	assert.False(t, ok)
	assert.Empty(t, cur.Belt)
	assert.Empty(t, next.Belt)
}

func TestBeltLookupEmpty(t *testing.T) {
	_, _, ok := BeltLookup("")
	assert.False(t, ok)
}

func TestBeltLookupLastRankHasNoNext(t *testing.T) {
	cur, next, ok := BeltLookup("Negro II Dan")
	require.True(t, ok)
	assert.Equal(t, "II Dan", cur.Grade)
	assert.Empty(t, next.Belt)
	assert.Empty(t, next.Grade)
}
