package core

import "testing"

// Application event codes live above the reserved system range, so the
// tests use codes past 0xFF to stay out of the engine's way.

func TestEventFireInvokesListenersInOrder(t *testing.T) {
	EventInitialize()
	const code EventCode = 0x100

	var order []int
	EventRegister(code, func(EventContext) bool {
		order = append(order, 1)
		return false
	})
	EventRegister(code, func(EventContext) bool {
		order = append(order, 2)
		return false
	})

	if EventFire(EventContext{Type: code}) {
		t.Error("EventFire() = true, want false when no listener handles the event")
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("listener order = %v, want [1 2]", order)
	}
}

func TestEventFirstHandlerWins(t *testing.T) {
	EventInitialize()
	const code EventCode = 0x101

	second := false
	EventRegister(code, func(EventContext) bool { return true })
	EventRegister(code, func(EventContext) bool {
		second = true
		return false
	})

	if !EventFire(EventContext{Type: code}) {
		t.Error("EventFire() = false, want true once a listener handles the event")
	}
	if second {
		t.Error("second listener ran after the event was already handled")
	}
}

func TestEventFireWithoutListeners(t *testing.T) {
	EventInitialize()

	if EventFire(EventContext{Type: 0x102}) {
		t.Error("EventFire() = true for a code nobody listens to")
	}
}

func TestEventRegisterNilListener(t *testing.T) {
	EventInitialize()

	if EventRegister(0x103, nil) {
		t.Error("EventRegister(nil) = true, want false")
	}
}

func TestEventDataPassedThrough(t *testing.T) {
	EventInitialize()
	const code EventCode = 0x104

	sent := &WindowEvent{Width: 800, Height: 600}
	var received interface{}
	EventRegister(code, func(ctx EventContext) bool {
		received = ctx.Data
		return true
	})

	EventFire(EventContext{Type: code, Data: sent})
	if received != sent {
		t.Errorf("listener received %v, want the exact payload %v", received, sent)
	}
}

func TestEventShutdownClearsListeners(t *testing.T) {
	EventInitialize()
	t.Cleanup(func() { EventInitialize() })

	const code EventCode = 0x105
	fired := 0
	EventRegister(code, func(EventContext) bool {
		fired++
		return true
	})

	if err := EventShutdown(); err != nil {
		t.Fatalf("EventShutdown() error = %v", err)
	}
	if EventRegister(code, func(EventContext) bool { return true }) {
		t.Error("EventRegister() = true on a shut down system")
	}
	if EventFire(EventContext{Type: code}) {
		t.Error("EventFire() = true on a shut down system")
	}

	EventInitialize()
	if EventFire(EventContext{Type: code}) {
		t.Error("EventFire() = true, want false after listeners were cleared")
	}
	if fired != 0 {
		t.Errorf("stale listener fired %d times after shutdown", fired)
	}
}
