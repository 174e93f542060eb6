package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01
	// Keyboard key pressed. Data is *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02
	// Keyboard key released. Data is *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03
	// Mouse button pressed. Data is *MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04
	// Mouse button released. Data is *MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05
	// Mouse moved. Data is *MouseEvent.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06
	// Mouse wheel scrolled. Data is *MouseEvent.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07
	// Resized/resolution changed from the OS. Data is *WindowEvent.
	EVENT_CODE_RESIZED EventCode = 0x08

	MAX_EVENT_CODE EventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	Button Button
	PosX   uint16
	PosY   uint16
	Scroll int8
}

type WindowEvent struct {
	Width  uint32
	Height uint32
}

// Should return true if handled; handled events are not passed on to
// further listeners.
type FnOnEvent func(context EventContext) bool

type eventCodeEntry struct {
	callbacks []FnOnEvent
}

type eventSystemState struct {
	registered [MAX_MESSAGE_CODES]eventCodeEntry
}

var onceEvent sync.Once
var eventInitialized bool = false
var eventState *eventSystemState = nil

func EventInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{}
	})
	eventInitialized = true
	return true
}

func EventShutdown() error {
	if !eventInitialized {
		return nil
	}
	for i := 0; i < MAX_MESSAGE_CODES; i++ {
		eventState.registered[i].callbacks = nil
	}
	eventInitialized = false
	return nil
}

// EventRegister adds a listener for the provided code. Listeners are
// invoked synchronously, in registration order, when the code fires.
func EventRegister(code EventCode, onEvent FnOnEvent) bool {
	if !eventInitialized || onEvent == nil {
		return false
	}
	entry := &eventState.registered[code]
	entry.callbacks = append(entry.callbacks, onEvent)
	return true
}

// EventFire delivers the context to listeners of context.Type. Returns
// true as soon as a listener reports the event handled.
func EventFire(context EventContext) bool {
	if !eventInitialized {
		return false
	}
	entry := &eventState.registered[context.Type]
	for _, cb := range entry.callbacks {
		if cb(context) {
			return true
		}
	}
	return false
}
