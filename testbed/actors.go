package testbed

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/renderer/components"
	"github.com/spaghettifunk/aurora/engine/scene"
	"github.com/spaghettifunk/aurora/engine/world"
)

const swayAngle float32 = 0.35

// swayActor eases the camera yaw back and forth while no one is touching
// the controls, mostly to prove that actors run every frame.
type swayActor struct {
	world.BaseActor

	camera  *components.Camera
	tween   *gween.Tween
	forward bool
}

func (s *swayActor) Start(object *scene.GameObject, w *world.World) {
	s.forward = true
	s.tween = gween.New(-swayAngle, swayAngle, 6, ease.InOutSine)
	core.LogDebug("sway actor started on object %d", object.ID())
}

func (s *swayActor) Update(object *scene.GameObject, w *world.World) {
	if anyCameraKeyDown() {
		return
	}

	value, finished := s.tween.Update(float32(w.Delta()))

	rotation := s.camera.GetEulerRotation()
	rotation.Y = value
	s.camera.SetEulerRotation(rotation)

	if finished {
		s.forward = !s.forward
		from, to := swayAngle, -swayAngle
		if s.forward {
			from, to = -swayAngle, swayAngle
		}
		s.tween = gween.New(from, to, 6, ease.InOutSine)
	}
}

func anyCameraKeyDown() bool {
	keys := []core.KeyCode{
		core.KEY_A, core.KEY_D, core.KEY_W, core.KEY_S,
		core.KEY_Q, core.KEY_E, core.KEY_SPACE, core.KEY_X,
		core.KEY_LEFT, core.KEY_RIGHT, core.KEY_UP, core.KEY_DOWN,
	}
	for _, k := range keys {
		if core.InputIsKeyDown(k) {
			return true
		}
	}
	return false
}

// assetWatchActor drains file change notifications so edits made to the
// assets directory while the testbed runs show up in the log.
type assetWatchActor struct {
	world.BaseActor
}

func (a *assetWatchActor) Update(object *scene.GameObject, w *world.World) {
	for {
		select {
		case event, ok := <-w.Assets().Events():
			if !ok {
				return
			}
			core.LogInfo("asset changed on disk: %s (%s)", event.Name, event.Op)
		default:
			return
		}
	}
}
