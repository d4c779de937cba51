/*
 * === This file is part of the WSL Distro Launcher ===
 *
 * Copyright 2024-2026 the WSL Distro Launcher authors.
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

// Package sm provides the event-dispatch core shared by the launcher
// controllers. A machine holds exactly one state at a time; states are
// closed sets of types per controller, and each state decides which
// event kinds it handles by type-switching inside OnEvent. Undefined
// (state, event) pairs are rejected, never an error.
package sm

// State is implemented by every state variant of a controller machine.
// OnEvent returns the successor state for the given event, or nil when
// the state defines no handler for that event kind.
type State[E any] interface {
	OnEvent(event E) State[E]
}

// Machine owns the current state of one controller. It is synchronous
// and single-threaded: Apply must be called from one goroutine only.
type Machine[E any] struct {
	current State[E]
}

func New[E any](initial State[E]) *Machine[E] {
	return &Machine[E]{current: initial}
}

// Apply dispatches one event against the current state. If the state
// handles this event kind the handler's result is installed as the new
// state and Apply returns true. Otherwise the state is left untouched
// and Apply returns false.
func (m *Machine[E]) Apply(event E) bool {
	next := m.current.OnEvent(event)
	if next == nil {
		return false
	}
	m.current = next
	return true
}

// Current returns the state the machine is in.
func (m *Machine[E]) Current() State[E] {
	return m.current
}

// Is reports whether the machine's current state is of kind S.
func Is[S State[E], E any](m *Machine[E]) bool {
	_, ok := m.current.(S)
	return ok
}
