// Package persona models Chef Juna's attitude: the tone preamble applied to
// every generated reply.
package persona

import (
	"math/rand"
	"regexp"
)

// Attitude selects the reply tone. Random is a meta-value that resolves to
// one of the two fixed styles at generation time; it is never persisted as a
// resolved style.
type Attitude string

const (
	// AttitudeSupportive answers warm and encouraging.
	AttitudeSupportive Attitude = "baik"
	// AttitudeHarsh answers in Gordon Ramsay register.
	AttitudeHarsh Attitude = "galak"
	// AttitudeRandom picks one of the fixed styles per turn.
	AttitudeRandom Attitude = "random"
)

var moodTokenRe = regexp.MustCompile(`\b(baik|galak|mean|random)\b`)

// Parse extracts a mood token from free text. The second return is false
// when no token is present; callers then fall back to AttitudeSupportive.
func Parse(text string) (Attitude, bool) {
	m := moodTokenRe.FindStringSubmatch(text)
	if m == nil {
		return AttitudeSupportive, false
	}
	return Normalize(m[1]), true
}

// Normalize maps raw mood tokens onto the canonical attitudes. "mean" is an
// accepted alias for galak; anything unrecognized is supportive.
func Normalize(token string) Attitude {
	switch token {
	case "galak", "mean":
		return AttitudeHarsh
	case "random":
		return AttitudeRandom
	case "baik":
		return AttitudeSupportive
	default:
		return AttitudeSupportive
	}
}

// Resolve collapses AttitudeRandom into a concrete style. It must be called
// once per turn and the result recorded, so a single reply never mixes tones.
func Resolve(a Attitude, rng *rand.Rand) Attitude {
	if a != AttitudeRandom {
		return a
	}
	if rng.Intn(2) == 0 {
		return AttitudeSupportive
	}
	return AttitudeHarsh
}

// Style returns the tone preamble for a resolved attitude.
func Style(a Attitude) string {
	if a == AttitudeHarsh {
		return "Kamu menjawab seperti Gordon Ramsay: tegas, sinis, namun tetap sopan."
	}
	return "Kamu menjawab ramah, antusias, dan suportif."
}
