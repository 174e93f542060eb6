package components_test

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer/components"
)

func assertVec3InDelta(t *testing.T, want, got math.Vec3, msg string) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-5, msg)
	assert.InDelta(t, want.Y, got.Y, 1e-5, msg)
	assert.InDelta(t, want.Z, got.Z, 1e-5, msg)
}

func TestCameraDefaults(t *testing.T) {
	camera := components.NewCamera()

	assert.Equal(t, math.NewVec3Zero(), camera.GetPosition())
	assert.Equal(t, math.NewVec3Zero(), camera.GetEulerRotation())
	assert.Equal(t, math.NewMat4Identity(), camera.GetView())

	// An untouched camera looks down negative z.
	assertVec3InDelta(t, math.NewVec3(0, 0, -1), camera.Forward(), "forward")
}

func TestCameraViewFollowsPosition(t *testing.T) {
	camera := components.NewCamera()
	camera.SetPosition(math.NewVec3(1, 2, 3))

	// The view matrix is the inverse of the camera transform.
	view := camera.GetView()
	assert.InDelta(t, -1, view.Data[12], 1e-5)
	assert.InDelta(t, -2, view.Data[13], 1e-5)
	assert.InDelta(t, -3, view.Data[14], 1e-5)
}

func TestCameraYawTurns(t *testing.T) {
	camera := components.NewCamera()
	camera.Yaw(float32(gomath.Pi / 2))

	assertVec3InDelta(t, math.NewVec3(-1, 0, 0), camera.Forward(), "forward after quarter turn")
	assertVec3InDelta(t, math.NewVec3(1, 0, 0), camera.Backward(), "backward after quarter turn")
}

func TestCameraPitchClamps(t *testing.T) {
	camera := components.NewCamera()

	camera.Pitch(10)
	limit := camera.GetEulerRotation().X
	assert.InDelta(t, 1.55334306, limit, 1e-5, "pitch clamps just short of straight up")

	camera.Pitch(-20)
	assert.InDelta(t, -limit, camera.GetEulerRotation().X, 1e-5)
}

func TestCameraMovement(t *testing.T) {
	camera := components.NewCamera()

	camera.MoveForward(2)
	assertVec3InDelta(t, math.NewVec3(0, 0, -2), camera.GetPosition(), "after moving forward")

	camera.MoveRight(3)
	assertVec3InDelta(t, math.NewVec3(3, 0, -2), camera.GetPosition(), "after strafing right")

	camera.MoveUp(1)
	camera.MoveDown(0.5)
	assertVec3InDelta(t, math.NewVec3(3, 0.5, -2), camera.GetPosition(), "after vertical moves")
}

func TestCameraReset(t *testing.T) {
	camera := components.NewCamera()
	camera.SetPosition(math.NewVec3(5, 5, 5))
	camera.Yaw(1)

	camera.Reset()

	assert.Equal(t, math.NewVec3Zero(), camera.GetPosition())
	assert.Equal(t, math.NewVec3Zero(), camera.GetEulerRotation())
	assert.Equal(t, math.NewMat4Identity(), camera.GetView())
}
