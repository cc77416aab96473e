package generator

import "fmt"

type State string

const (
	StateDraft             State = "draft"
	StateParseCheck        State = "parse_check"
	StateRepair            State = "repair"
	StateQualityCheck      State = "quality_check"
	StateRetryWithFeedback State = "retry_with_feedback"
	StateRefine            State = "refine"
	StateNormalize         State = "normalize"
	StateDone              State = "done"
	StateFailed            State = "failed"
)

var stateMessages = map[State]string{
	StateDraft:             "Drafting your plan",
	StateParseCheck:        "Reading the draft",
	StateRepair:            "Repairing the draft",
	StateQualityCheck:      "Checking plan quality",
	StateRetryWithFeedback: "Revising the plan from quality feedback",
	StateRefine:            "Checking the plan against your answers",
	StateNormalize:         "Applying your constraints",
	StateDone:              "Plan ready",
	StateFailed:            "Generation failed",
}

// Message is a short user-facing description of the state.
func (s State) Message() string { return stateMessages[s] }

// transitions lists the allowed edges. Draft may jump straight to Normalize
// when the provider is down and template fallback is enabled.
var transitions = map[State][]State{
	StateDraft:             {StateParseCheck, StateNormalize, StateFailed},
	StateParseCheck:        {StateQualityCheck, StateRepair, StateFailed},
	StateRepair:            {StateParseCheck, StateFailed},
	StateQualityCheck:      {StateRetryWithFeedback, StateRefine, StateNormalize, StateFailed},
	StateRetryWithFeedback: {StateRefine, StateNormalize, StateFailed},
	StateRefine:            {StateNormalize, StateFailed},
	StateNormalize:         {StateDone},
}

// budgets bound every state that calls the model to a single visit.
var budgets = map[State]int{
	StateDraft:             1,
	StateRepair:            1,
	StateRetryWithFeedback: 1,
	StateRefine:            1,
}

type machine struct {
	state  State
	trace  []State
	visits map[State]int
	notify func(State)
}

func newMachine(notify func(State)) *machine {
	m := &machine{state: StateDraft, visits: map[State]int{}, notify: notify}
	m.enter(StateDraft)
	return m
}

func (m *machine) enter(s State) {
	m.state = s
	m.trace = append(m.trace, s)
	m.visits[s]++
	if m.notify != nil {
		m.notify(s)
	}
}

// can reports whether next is a legal edge with budget left.
func (m *machine) can(next State) bool {
	if !allowed(m.state, next) {
		return false
	}
	if b, ok := budgets[next]; ok && m.visits[next] >= b {
		return false
	}
	return true
}

func (m *machine) to(next State) error {
	if !allowed(m.state, next) {
		return fmt.Errorf("illegal transition %s -> %s", m.state, next)
	}
	if b, ok := budgets[next]; ok && m.visits[next] >= b {
		return fmt.Errorf("state %s exhausted its budget of %d", next, b)
	}
	m.enter(next)
	return nil
}

func allowed(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (m *machine) Trace() []State {
	return append([]State(nil), m.trace...)
}
