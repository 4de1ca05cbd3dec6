package inquiry

import "errors"

// Step is the 1-based wizard step index.
type Step int

const (
	StepBasicInfo Step = 1
	StepDetails   Step = 2
	StepConsent   Step = 3
)

// StepCount is the number of wizard steps.
const StepCount = int(StepConsent)

var (
	// ErrUnknownStep reports a step outside 1..3.
	ErrUnknownStep = errors.New("unknown wizard step")
	// ErrSubmissionInProgress reports a submit while another is in flight.
	ErrSubmissionInProgress = errors.New("submission already in progress")
	// ErrSessionRequired reports a missing wizard session id.
	ErrSessionRequired = errors.New("wizard session id is required")
)

// Valid reports whether s is one of the wizard steps.
func (s Step) Valid() bool {
	return s >= StepBasicInfo && s <= StepConsent
}

// State is the wizard state of one session.
type State struct {
	Step       Step  `json:"step"`
	Draft      Draft `json:"draft"`
	Submitting bool  `json:"submitting"`
}

// NewState returns the initial wizard state.
func NewState() State {
	return State{Step: StepBasicInfo}
}

// Next validates the current step and advances. On failure the state is
// left untouched.
func (s *State) Next() error {
	if !s.Step.Valid() {
		return ErrUnknownStep
	}
	if err := ValidateStep(s.Step, s.Draft); err != nil {
		return err
	}
	if s.Step < StepConsent {
		s.Step++
	}
	return nil
}

// Previous moves back one step without validation, floored at step 1.
func (s *State) Previous() {
	if s.Step > StepBasicInfo {
		s.Step--
		return
	}
	s.Step = StepBasicInfo
}

// Reset returns the state to its initial value.
func (s *State) Reset() {
	*s = NewState()
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	s.Draft = s.Draft.Clone()
	return s
}
