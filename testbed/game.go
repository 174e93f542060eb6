package testbed

import (
	"fmt"

	"github.com/spaghettifunk/aurora/engine"
	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/spaghettifunk/aurora/engine/math"
	"github.com/spaghettifunk/aurora/engine/renderer"
	"github.com/spaghettifunk/aurora/engine/renderer/components"
)

type TestGame struct {
	*engine.Game
}

type gameState struct {
	WorldCamera *components.Camera

	width  uint32
	height uint32

	sky *renderer.Texture
}

func New(config *engine.ApplicationConfig) (*TestGame, error) {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnOnResize = tg.OnResize

	return tg, nil
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")

	if g.World == nil {
		return fmt.Errorf("the engine is not yet initialized with a world")
	}

	state := g.State.(*gameState)
	state.width = g.ApplicationConfig.StartWidth
	state.height = g.ApplicationConfig.StartHeight

	state.WorldCamera = g.World.Renderer().MainCamera()
	state.WorldCamera.SetPosition(math.NewVec3(10.5, 5.0, 9.5))

	// The cube map compiles lazily once all six face images arrive.
	state.sky = g.World.Renderer().AcquireTexture("skybox_cubemap.png")

	sway := g.World.NewGameObject("camera_sway")
	sway.AddComponent(&swayActor{camera: state.WorldCamera})

	watcher := g.World.NewGameObject("asset_watcher")
	watcher.AddComponent(&assetWatchActor{})

	return nil
}

var tempMoveSpeed float32 = 50.0

func (g *TestGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	// HACK: temp hack to move camera around.
	if core.InputIsKeyDown(core.KEY_A) || core.InputIsKeyDown(core.KEY_LEFT) {
		state.WorldCamera.Yaw(float32(1.0 * deltaTime))
	}

	if core.InputIsKeyDown(core.KEY_D) || core.InputIsKeyDown(core.KEY_RIGHT) {
		state.WorldCamera.Yaw(float32(-1.0 * deltaTime))
	}

	if core.InputIsKeyDown(core.KEY_UP) {
		state.WorldCamera.Pitch(float32(1.0 * deltaTime))
	}

	if core.InputIsKeyDown(core.KEY_DOWN) {
		state.WorldCamera.Pitch(float32(-1.0 * deltaTime))
	}

	if core.InputIsKeyDown(core.KEY_W) {
		state.WorldCamera.MoveForward(tempMoveSpeed * float32(deltaTime))
	}

	if core.InputIsKeyDown(core.KEY_S) {
		state.WorldCamera.MoveBackward(tempMoveSpeed * float32(deltaTime))
	}

	if core.InputIsKeyDown(core.KEY_Q) {
		state.WorldCamera.MoveLeft(tempMoveSpeed * float32(deltaTime))
	}

	if core.InputIsKeyDown(core.KEY_E) {
		state.WorldCamera.MoveRight(tempMoveSpeed * float32(deltaTime))
	}

	if core.InputIsKeyDown(core.KEY_SPACE) {
		state.WorldCamera.MoveUp(tempMoveSpeed * float32(deltaTime))
	}

	if core.InputIsKeyDown(core.KEY_X) {
		state.WorldCamera.MoveDown(tempMoveSpeed * float32(deltaTime))
	}

	if core.InputIsKeyUp(core.KEY_P) && core.InputWasKeyDown(core.KEY_P) {
		pos := state.WorldCamera.GetPosition()
		core.LogDebug("Pos:[%.2f, %.2f, %.2f]", pos.X, pos.Y, pos.Z)
	}

	// Bind a key to force the sky texture through a fresh compile.
	if core.InputIsKeyUp(core.KEY_L) && core.InputWasKeyDown(core.KEY_L) {
		g.World.Renderer().ReleaseTexture("skybox_cubemap.png")
		state.sky = g.World.Renderer().AcquireTexture("skybox_cubemap.png")
		core.LogInfo("sky texture reload requested")
	}

	return nil
}

func (g *TestGame) Render(packet *renderer.RenderPacket, deltaTime float64) error {
	return nil
}

func (g *TestGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)

	state.width = width
	state.height = height

	return nil
}
