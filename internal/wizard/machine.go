package wizard

type Step int

const (
	StepMarkets  Step = 1
	StepChannels Step = 2
	StepContact  Step = 3
)

type State string

const (
	StateStep1        State = "step1"
	StateStep2        State = "step2"
	StateStep3Form    State = "step3_form"
	StateStep3Success State = "step3_success"
)

func (s State) Step() Step {
	switch s {
	case StateStep1:
		return StepMarkets
	case StateStep2:
		return StepChannels
	default:
		return StepContact
	}
}

const (
	msgSelectMarket  = "Please select at least one market interest"
	msgSelectChannel = "Please select a subscription preference"
)

// Wizard drives the fixed markets -> channels -> contact sequence. Guards are
// only evaluated when moving forward.
type Wizard struct {
	state  State
	errors map[Step]string
}

func NewWizard() *Wizard {
	return &Wizard{state: StateStep1, errors: map[Step]string{}}
}

func (w *Wizard) State() State {
	return w.state
}

func (w *Wizard) Errors() map[Step]string {
	out := make(map[Step]string, len(w.errors))
	for k, v := range w.errors {
		out[k] = v
	}
	return out
}

func (w *Wizard) SetError(step Step, msg string) {
	w.errors[step] = msg
}

func (w *Wizard) ClearError(step Step) {
	delete(w.errors, step)
}

// Next advances one step if the guard for the current step holds.
func (w *Wizard) Next(hasMarkets, hasChannels bool) error {
	switch w.state {
	case StateStep1:
		w.ClearError(StepMarkets)
		if !hasMarkets {
			return w.reject(StepMarkets, msgSelectMarket)
		}
		w.state = StateStep2
	case StateStep2:
		w.ClearError(StepChannels)
		if !hasChannels {
			return w.reject(StepChannels, msgSelectChannel)
		}
		w.state = StateStep3Form
	default:
		return ErrInvalidTransition
	}
	return nil
}

func (w *Wizard) Back() error {
	switch w.state {
	case StateStep2:
		w.state = StateStep1
	case StateStep3Form:
		w.state = StateStep2
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Succeed moves the contact form to the terminal success state.
func (w *Wizard) Succeed() error {
	if w.state != StateStep3Form {
		return ErrInvalidTransition
	}
	w.ClearError(StepContact)
	w.state = StateStep3Success
	return nil
}

// Restart leaves the success state for a fresh run.
func (w *Wizard) Restart() error {
	if w.state != StateStep3Success {
		return ErrInvalidTransition
	}
	w.errors = map[Step]string{}
	w.state = StateStep1
	return nil
}

func (w *Wizard) reject(step Step, msg string) error {
	w.errors[step] = msg
	return &ValidationError{Step: step, Message: msg}
}
