// Package statemachine runs state functions in Rob Pike's style: each state
// does its work and returns the next state, or nil to stop.
package statemachine

import (
	"sync"
)

// StateFn is a state function over entity T.
type StateFn[T any] func(*T) StateFn[T]

// StateMachine drives an entity through its state functions. The current
// state may be read concurrently while the machine runs.
type StateMachine[T any] struct {
	entity  *T
	stateFn StateFn[T]
	steps   int
	mutex   sync.RWMutex
}

// NewStateMachine creates a machine for entity positioned at initialStateFn.
func NewStateMachine[T any](entity *T, initialStateFn StateFn[T]) *StateMachine[T] {
	return &StateMachine[T]{
		entity:  entity,
		stateFn: initialStateFn,
	}
}

// Dispatch runs one state function and records the state it returns. When
// stateFn is nil the current state runs.
func (sm *StateMachine[T]) Dispatch(stateFn StateFn[T]) {
	sm.mutex.Lock()
	if stateFn != nil {
		sm.stateFn = stateFn
	}
	current := sm.stateFn
	sm.mutex.Unlock()

	if current == nil {
		return
	}

	next := current(sm.entity)

	sm.mutex.Lock()
	sm.stateFn = next
	sm.steps++
	sm.mutex.Unlock()
}

// Run dispatches from the current state until a state returns nil. It
// returns the number of states executed.
func (sm *StateMachine[T]) Run() int {
	n := 0
	for sm.GetCurrentState() != nil {
		sm.Dispatch(nil)
		n++
	}
	return n
}

// GetCurrentState returns the current state function
func (sm *StateMachine[T]) GetCurrentState() StateFn[T] {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.stateFn
}

// SetState sets the state function without running it
func (sm *StateMachine[T]) SetState(stateFn StateFn[T]) {
	sm.mutex.Lock()
	sm.stateFn = stateFn
	sm.mutex.Unlock()
}

// Steps returns how many state functions have run.
func (sm *StateMachine[T]) Steps() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.steps
}
