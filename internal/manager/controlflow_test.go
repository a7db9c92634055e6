package manager

import (
	"testing"
	"time"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		name      string
		state     State
		cf        ControlFlow
		wantState State
		wantStep  Step
	}{
		{"continue keeps running", Running, ControlFlow{Kind: Continue}, Running, StepNone},
		{"exit shuts down", Running, ControlFlow{Kind: Exit}, Exiting, StepShutdown},
		{"exit with code aborts", Running, ControlFlow{Kind: ExitWithCode, Code: 2}, Exiting, StepAbort},
		{"exiting ignores decisions", Exiting, ControlFlow{Kind: Exit}, Exiting, StepNone},
		{"terminated ignores decisions", Terminated, ControlFlow{Kind: ExitWithCode}, Terminated, StepNone},
		{"initializing ignores decisions", Initializing, ControlFlow{Kind: Exit}, Initializing, StepNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state, step := Transition(tc.state, tc.cf)
			if state != tc.wantState || step != tc.wantStep {
				t.Fatalf("expected (%s, %d), got (%s, %d)", tc.wantState, tc.wantStep, state, step)
			}
		})
	}
}

func TestControlFlowSetters(t *testing.T) {
	var cf ControlFlow
	if cf.Kind != Continue {
		t.Fatalf("expected zero value to continue, got %s", cf.Kind)
	}
	cf.SetExitWithCode(9)
	if cf.Kind != ExitWithCode || cf.Code != 9 {
		t.Fatalf("unexpected %+v", cf)
	}
	cf.SetExit()
	if cf.Kind != Exit || cf.Code != 0 {
		t.Fatalf("expected exit to clear the code, got %+v", cf)
	}
	cf.SetContinue()
	if cf.Kind != Continue {
		t.Fatalf("expected continue, got %s", cf.Kind)
	}
}

func TestTimerFrame(t *testing.T) {
	now := time.Unix(100, 0)
	timer := newTimerWithClock(func() time.Time { return now })

	now = now.Add(2 * time.Second)
	dt, elapsed := timer.Frame()
	if dt != 2*time.Second || elapsed != 2*time.Second {
		t.Fatalf("expected 2s/2s, got %s/%s", dt, elapsed)
	}

	now = now.Add(500 * time.Millisecond)
	dt, elapsed = timer.Frame()
	if dt != 500*time.Millisecond || elapsed != 2500*time.Millisecond {
		t.Fatalf("expected 500ms/2.5s, got %s/%s", dt, elapsed)
	}

	timer.Reset()
	if got := timer.Elapsed(); got != 0 {
		t.Fatalf("expected reset timer at zero, got %s", got)
	}
}
