package input

import (
	"errors"
	"fmt"
)

var ErrDuplicateAction = errors.New("input: duplicate action")

// ActionMap holds the named actions of a game.
type ActionMap struct {
	actions map[string]*Action
	order   []string
}

func NewActionMap() *ActionMap {
	return &ActionMap{actions: map[string]*Action{}}
}

func (m *ActionMap) Add(a *Action) error {
	if a == nil {
		return errors.New("input: nil action")
	}
	if _, ok := m.actions[a.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateAction, a.Name())
	}
	m.actions[a.Name()] = a
	m.order = append(m.order, a.Name())
	return nil
}

// Action looks up an action by name.
func (m *ActionMap) Action(name string) (*Action, bool) {
	if m == nil {
		return nil, false
	}
	a, ok := m.actions[name]
	return a, ok
}

// Names returns action names in the order they were added.
func (m *ActionMap) Names() []string {
	return append([]string(nil), m.order...)
}

// Update polls every enabled action in insertion order.
func (m *ActionMap) Update(src Source) {
	if m == nil || src == nil {
		return
	}
	for _, name := range m.order {
		m.actions[name].Update(src)
	}
}

// Reset clears binding state of every action, e.g. after the cursor was
// released to a menu.
func (m *ActionMap) Reset() {
	if m == nil {
		return
	}
	for _, name := range m.order {
		m.actions[name].Reset()
	}
}
