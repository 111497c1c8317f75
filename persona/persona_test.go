package persona

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text string
		want Attitude
		ok   bool
	}{
		{"juna jadi galak dong", AttitudeHarsh, true},
		{"be mean please juna", AttitudeHarsh, true},
		{"juna yang baik ya", AttitudeSupportive, true},
		{"mood random aja", AttitudeRandom, true},
		{"juna ubah sikap", AttitudeSupportive, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.text)
		assert.Equal(t, tt.want, got, tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
	}
}

func TestResolve_RandomPicksFixedStyle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := map[Attitude]bool{}
	for i := 0; i < 50; i++ {
		got := Resolve(AttitudeRandom, rng)
		assert.Contains(t, []Attitude{AttitudeSupportive, AttitudeHarsh}, got)
		seen[got] = true
	}
	assert.True(t, seen[AttitudeSupportive])
	assert.True(t, seen[AttitudeHarsh])
}

func TestResolve_FixedStylesPassThrough(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, AttitudeHarsh, Resolve(AttitudeHarsh, rng))
	assert.Equal(t, AttitudeSupportive, Resolve(AttitudeSupportive, rng))
}

func TestStyle(t *testing.T) {
	assert.Contains(t, Style(AttitudeHarsh), "Gordon Ramsay")
	assert.Contains(t, Style(AttitudeSupportive), "ramah")
}
