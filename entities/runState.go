package entities

import "fmt"

type RunState string

const (
	RunInit    RunState = "init"
	RunRunning RunState = "running"
	RunSuccess RunState = "success"
	RunFailure RunState = "failure"
)

var runTransitions = map[RunState][]RunState{
	RunInit:    {RunRunning},
	RunRunning: {RunSuccess, RunFailure},
}

func (state RunState) IsTerminal() bool {
	return state == RunSuccess || state == RunFailure
}

func (state RunState) CanTransitionTo(next RunState) bool {
	for _, allowed := range runTransitions[state] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns the next state or an error when the move is not allowed.
func (state RunState) Transition(next RunState) (RunState, error) {
	if !state.CanTransitionTo(next) {
		return state, fmt.Errorf("illegal run state transition %s -> %s", state, next)
	}
	return next, nil
}
