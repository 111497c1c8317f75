// Package agent implements the conversational turn graph: query rewrite,
// retrieval, intent routing and the bounded decision loop that lets the
// model call recipe tools before composing its final reply.
package agent

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"dapoerjuna/logging"
	"dapoerjuna/memory"
	"dapoerjuna/model"
	"dapoerjuna/persona"
	"dapoerjuna/recipe"
	"dapoerjuna/retriever"
	"dapoerjuna/session"
	"dapoerjuna/tool"
)

// DefaultMaxSteps bounds the decide/dispatch cycle per turn.
const DefaultMaxSteps = 6

// Options configures an Orchestrator.
type Options struct {
	// MaxSteps caps decision iterations within one turn.
	MaxSteps int
	// Logger receives structured per-phase log lines.
	Logger logging.Logger
	// Rand drives the per-turn resolution of the random persona.
	Rand *rand.Rand
}

// Orchestrator runs one conversational turn at a time over a shared model,
// retriever and tool registry. The orchestrator itself is stateless across
// turns; everything conversational lives in the session. Concurrent turns
// on the same session must be serialized by the caller.
type Orchestrator struct {
	model    model.Model
	retr     *retriever.Retriever
	registry *tool.Registry
	catalog  string
	maxSteps int
	logger   logging.Logger
	rng      *rand.Rand
}

// New wires an orchestrator over its collaborators.
func New(m model.Model, retr *retriever.Retriever, registry *tool.Registry, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		MaxSteps: DefaultMaxSteps,
		Logger:   logging.NoOpLogger{},
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Orchestrator{
		model:    m,
		retr:     retr,
		registry: registry,
		catalog:  registry.Describe(),
		maxSteps: opts.MaxSteps,
		logger:   opts.Logger,
		rng:      opts.Rand,
	}
}

// Respond processes one user message against a session and returns the
// final assistant reply. Failures inside the turn never escape as errors;
// they surface as apologetic replies from the error responder. The error
// return is reserved for a canceled context.
func (o *Orchestrator) Respond(ctx context.Context, sess *session.Session, userMsg string) (string, error) {
	st := &turnState{
		id:       uuid.NewString(),
		userMsg:  userMsg,
		attitude: persona.Resolve(sess.Attitude(), o.rng),
	}
	st.append("User: " + userMsg)
	sess.Memory.Append(memory.RoleUser, userMsg)

	o.logger.Info("turn.start", "turn_id", st.id, "attitude", string(st.attitude))

	current := phaseRewrite
	for current != phaseDone {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		o.logger.Debug("turn.phase", "turn_id", st.id, "phase", current.String())

		switch current {
		case phaseRewrite:
			current = o.rewrite(ctx, sess, st)
		case phaseRetrieve:
			current = o.retrieve(ctx, st)
		case phaseRoute:
			current = o.routeTurn(st)
		case phaseAttitude:
			current = o.setAttitude(sess, st)
		case phaseDecide:
			current = o.decide(ctx, sess, st)
		case phaseDispatch:
			current = o.dispatch(ctx, sess, st)
		case phaseSynth:
			current = o.synthesize(ctx, sess, st)
		case phaseError:
			current = o.respondError(sess, st)
		}
	}

	reply := tool.StripCallMarkup(st.reply)
	if recipe.IsDetailBlock(reply) {
		sess.SetLastRecipes(reply)
	}

	o.logger.Info("turn.done", "turn_id", st.id, "route", string(st.route), "steps", st.steps)

	return reply, nil
}

// rewrite restates the user's question as a retrieval query.
func (o *Orchestrator) rewrite(ctx context.Context, sess *session.Session, st *turnState) phase {
	resp, err := o.generate(ctx, st, rewritePrompt(st.userMsg))
	if err != nil {
		return st.fail(&UpstreamError{Op: "model.rewrite", Err: err})
	}
	rewritten := strings.TrimSpace(resp)
	if rewritten == "" {
		return st.fail(&UpstreamError{Op: "model.rewrite", Err: fmt.Errorf("empty rewrite")})
	}

	st.rewritten = rewritten
	tagged := "[rewritten] " + rewritten
	st.append(tagged)
	sess.Memory.Append(memory.RoleAssistant, tagged)
	return phaseRetrieve
}

// retrieve fills st.docs with the blank-line joined top-k recipe blocks.
func (o *Orchestrator) retrieve(ctx context.Context, st *turnState) phase {
	docs, err := o.retr.Retrieve(ctx, st.rewritten)
	if err != nil {
		return st.fail(&UpstreamError{Op: "retriever.search", Err: err})
	}
	st.docs = docs
	return phaseRoute
}

// routeTurn records the route and picks the entry phase of its path.
func (o *Orchestrator) routeTurn(st *turnState) phase {
	st.route = Classify(st.userMsg)

	o.logger.Debug("turn.route", "turn_id", st.id, "route", string(st.route))

	switch st.route {
	case RouteAttitudeChange:
		return phaseAttitude
	case RouteDefault:
		return phaseSynth
	default:
		return phaseDecide
	}
}

// setAttitude applies an explicit in-conversation mood command and ends
// the turn with a confirmation.
func (o *Orchestrator) setAttitude(sess *session.Session, st *turnState) phase {
	att, _ := persona.Parse(strings.ToLower(st.userMsg))
	sess.SetAttitude(att)

	msg := fmt.Sprintf("Sikap Juna di-set ke '%s'.", att)
	st.append(msg)
	sess.Memory.Append(memory.RoleAssistant, msg)
	st.reply = msg
	return phaseDone
}

// decide asks the model to answer or emit one tool call. The step counter
// guards the only cycle in the graph.
func (o *Orchestrator) decide(ctx context.Context, sess *session.Session, st *turnState) phase {
	if st.steps >= o.maxSteps {
		return st.fail(&LoopBoundError{Steps: st.steps})
	}
	st.steps++

	draft, err := o.generate(ctx, st, decidePrompt(sess.Memory.Render(), st.messages))
	if err != nil {
		return st.fail(&UpstreamError{Op: "model.decide", Err: err})
	}
	draft = strings.TrimSpace(draft)
	st.append(draft)
	sess.Memory.Append(memory.RoleAssistant, draft)

	if tool.ContainsCall(draft) {
		return phaseDispatch
	}

	st.reply = draft
	return phaseDone
}

// dispatch parses and executes the tool call in the latest draft, then
// hands control back to the decision step.
func (o *Orchestrator) dispatch(ctx context.Context, sess *session.Session, st *turnState) phase {
	call, err := tool.ParseCall(st.lastMessage())
	if err != nil {
		return st.fail(err)
	}

	o.injectLastRecipes(sess, call)

	callID := fmt.Sprintf("%s/%d", st.id, st.steps)
	toolCtx := tool.NewContext(ctx, sess, o.logger, callID)

	result, err := o.registry.Dispatch(toolCtx, call)
	if err != nil {
		return st.fail(err)
	}

	if call.Name == "set_juna_attitude" {
		sess.SetAttitude(persona.Normalize(result))
	}

	st.append(result)
	sess.Memory.Append(memory.RoleAssistant, result)
	return phaseDecide
}

// injectLastRecipes supplies the session's last result set to tools that
// accept a recipes argument when the model omitted it.
func (o *Orchestrator) injectLastRecipes(sess *session.Session, call *tool.Call) {
	t, ok := o.registry.Get(call.Name)
	if !ok {
		return
	}
	props, _ := t.Parameters()["properties"].(map[string]any)
	if _, takesRecipes := props["recipes"]; !takesRecipes {
		return
	}
	if blob, _ := call.Args["recipes"].(string); blob == "" {
		call.Args["recipes"] = sess.LastRecipes()
	}
}

// synthesize produces the retrieval-grounded answer for plain questions.
func (o *Orchestrator) synthesize(ctx context.Context, sess *session.Session, st *turnState) phase {
	ans, err := o.generate(ctx, st, synthPrompt(st.docs, st.rewritten))
	if err != nil {
		return st.fail(&UpstreamError{Op: "model.synth", Err: err})
	}
	ans = strings.TrimSpace(ans)
	st.append(ans)
	sess.Memory.Append(memory.RoleAssistant, ans)
	st.reply = ans
	return phaseDone
}

// respondError is the sink for every failure path: it renders the captured
// failure as the final reply and ends the turn cleanly.
func (o *Orchestrator) respondError(sess *session.Session, st *turnState) phase {
	o.logger.Warn("turn.error", "turn_id", st.id, "error", fmt.Sprint(st.failure))

	msg := errorReply(st.failure)
	st.append(msg)
	sess.Memory.Append(memory.RoleAssistant, msg)
	st.reply = msg
	return phaseDone
}

// generate runs one model call with the turn's resolved instructions.
func (o *Orchestrator) generate(ctx context.Context, st *turnState, prompt string) (string, error) {
	resp, err := o.model.Generate(ctx, model.Request{
		Instructions: instructions(st.attitude, o.catalog),
		Prompt:       prompt,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
