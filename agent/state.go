package agent

import (
	"dapoerjuna/persona"
)

// phase enumerates the states of the turn graph. The decide/dispatch pair
// is the only cycle; every other transition moves forward until a terminal
// phase is reached.
type phase int

const (
	phaseRewrite phase = iota
	phaseRetrieve
	phaseRoute
	phaseAttitude
	phaseDecide
	phaseDispatch
	phaseSynth
	phaseError
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseRewrite:
		return "rewrite"
	case phaseRetrieve:
		return "retrieve"
	case phaseRoute:
		return "route"
	case phaseAttitude:
		return "attitude"
	case phaseDecide:
		return "decide"
	case phaseDispatch:
		return "dispatch"
	case phaseSynth:
		return "synth"
	case phaseError:
		return "error"
	case phaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// turnState is the per-turn mutable state threaded through the graph.
// It is created fresh for every user message and discarded once the final
// reply is produced; conversation history lives in the session's memory
// window instead.
type turnState struct {
	id        string   // correlates log lines and tool calls of one turn
	userMsg   string   // the raw user message driving this turn
	messages  []string // tagged per-turn message log
	steps     int      // decision iterations consumed
	docs      string   // blank-line joined retrieval result
	rewritten string   // search-optimized restatement of userMsg
	route     Route
	attitude  persona.Attitude // resolved once, random already collapsed
	failure   error            // captured error awaiting the error responder
	reply     string           // final assistant reply
}

func (st *turnState) append(msg string) {
	st.messages = append(st.messages, msg)
}

// lastMessage returns the newest entry of the per-turn log.
func (st *turnState) lastMessage() string {
	if len(st.messages) == 0 {
		return ""
	}
	return st.messages[len(st.messages)-1]
}

// fail records a failure and returns the error phase, keeping call sites
// one-liners.
func (st *turnState) fail(err error) phase {
	st.failure = err
	return phaseError
}
