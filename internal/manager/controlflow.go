package manager

import "fmt"

// FlowKind is the decision a callback makes for the current iteration.
type FlowKind int

const (
	// Continue runs the loop again.
	Continue FlowKind = iota
	// Exit closes every window, joins their threads and returns from Run.
	Exit
	// ExitWithCode terminates the process with Code without joining window
	// threads.
	ExitWithCode
)

func (k FlowKind) String() string {
	switch k {
	case Continue:
		return "continue"
	case Exit:
		return "exit"
	case ExitWithCode:
		return "exit-with-code"
	default:
		return fmt.Sprintf("flow(%d)", int(k))
	}
}

// ControlFlow is the out-parameter handed to the callback. A fresh
// Continue value is used for every event.
type ControlFlow struct {
	Kind FlowKind
	Code int
}

// SetContinue keeps the loop running. It is the default.
func (cf *ControlFlow) SetContinue() { *cf = ControlFlow{Kind: Continue} }

// SetExit closes every window and ends Run once the callback returns.
func (cf *ControlFlow) SetExit() { *cf = ControlFlow{Kind: Exit} }

// SetExitWithCode requests abrupt process termination with code.
func (cf *ControlFlow) SetExitWithCode(code int) {
	*cf = ControlFlow{Kind: ExitWithCode, Code: code}
}

// State is the lifecycle state of a Manager.
type State int

const (
	// Initializing is the state between New and Run.
	Initializing State = iota
	// Running means Run is delivering events.
	Running
	// Exiting means windows are being closed and joined. AddWindow fails.
	Exiting
	// Terminated means Run has returned.
	Terminated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Exiting:
		return "exiting"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Step is the work the loop performs after a transition.
type Step int

const (
	// StepNone keeps looping.
	StepNone Step = iota
	// StepShutdown closes and joins every window, then returns.
	StepShutdown
	// StepAbort invokes the exit function without joining.
	StepAbort
)

// Transition applies a callback decision to the manager state. It has no
// side effects; Run performs the returned step.
func Transition(state State, cf ControlFlow) (State, Step) {
	if state != Running {
		return state, StepNone
	}
	switch cf.Kind {
	case Exit:
		return Exiting, StepShutdown
	case ExitWithCode:
		return Exiting, StepAbort
	default:
		return Running, StepNone
	}
}
