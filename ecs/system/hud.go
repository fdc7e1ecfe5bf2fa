package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/freelook/ecs"
)

// HUDSystem keeps the latest look event for the debug overlay. It drains the
// event queue, so it should run last.
type HUDSystem struct {
	last    LookEvent
	hasLast bool
	events  int
}

func NewHUDSystem() *HUDSystem {
	return &HUDSystem{}
}

func (h *HUDSystem) Update(w *ecs.World) {
	for _, evt := range w.Events().Drain() {
		if evt.Type != EventLookApplied {
			continue
		}
		if look, ok := evt.Data.(LookEvent); ok {
			h.last = look
			h.hasLast = true
			h.events++
		}
	}
}

// Last returns the most recent look event.
func (h *HUDSystem) Last() (LookEvent, bool) {
	return h.last, h.hasLast
}

func (h *HUDSystem) Draw(screen *ebiten.Image) {
	msg := fmt.Sprintf("TPS: %.1f  FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS())
	if h.hasLast {
		msg += fmt.Sprintf("\npitch: %6.2f  yaw: %6.2f  via %s  (%d events)", h.last.Pitch, h.last.Yaw, h.last.Device, h.events)
	}
	ebitenutil.DebugPrint(screen, msg)
}
