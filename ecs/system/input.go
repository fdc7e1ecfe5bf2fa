package system

import (
	"github.com/milk9111/freelook/ecs"
	"github.com/milk9111/freelook/input"
)

// InputSystem polls the action map once per frame. Performed handlers run
// synchronously from here, so systems that subscribe must run earlier.
type InputSystem struct {
	actions *input.ActionMap
	source  input.Source
}

func NewInputSystem(actions *input.ActionMap, source input.Source) *InputSystem {
	return &InputSystem{actions: actions, source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil {
		return
	}
	i.actions.Update(i.source)
}
