package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dapoerjuna/persona"
)

func TestNew_Defaults(t *testing.T) {
	s := New("", 0, "")
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, persona.AttitudeSupportive, s.Attitude())
	assert.Empty(t, s.LastRecipes())
}

func TestSession_AttitudeAndBlob(t *testing.T) {
	s := New("sid", 4, persona.AttitudeSupportive)
	s.SetAttitude(persona.AttitudeHarsh)
	s.SetLastRecipes("Judul: A\n\nJudul: B")

	assert.Equal(t, persona.AttitudeHarsh, s.Attitude())
	assert.Equal(t, "Judul: A\n\nJudul: B", s.LastRecipes())
}

func TestSession_Reset(t *testing.T) {
	s := New("sid", 4, persona.AttitudeHarsh)
	s.Memory.Append("user", "halo")
	s.SetLastRecipes("blob")

	s.Reset()

	assert.Zero(t, s.Memory.Len())
	assert.Empty(t, s.LastRecipes())
	// Attitude survives a history clear.
	assert.Equal(t, persona.AttitudeHarsh, s.Attitude())
}

func TestStore_GetCreatesAndReuses(t *testing.T) {
	store := NewStore(time.Minute, 4, persona.AttitudeSupportive)

	a := store.Get("sid")
	a.SetAttitude(persona.AttitudeHarsh)

	b := store.Get("sid")
	require.Same(t, a, b)
	assert.Equal(t, persona.AttitudeHarsh, b.Attitude())
	assert.Equal(t, 1, store.Len())
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(time.Minute, 4, persona.AttitudeSupportive)
	first := store.Get("sid")
	store.Delete("sid")

	second := store.Get("sid")
	assert.NotSame(t, first, second)
}
