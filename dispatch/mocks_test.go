package dispatch_test

import (
	"github.com/dasdy/vkbd/dispatch"
	"github.com/dasdy/vkbd/keyboard"
	"github.com/dasdy/vkbd/model"
)

type sentPress struct {
	Payload dispatch.Payload
	Mods    model.ModMask
}

// InjectorMock records every call and optionally fails.
type InjectorMock struct {
	Presses      []sentPress
	Releases     int
	PressError   error
	ReleaseError error

	// OnPress runs inside SendPress, used to call back into the engine.
	OnPress func()
}

func (m *InjectorMock) SendPress(payload dispatch.Payload, mods model.ModMask) error {
	m.Presses = append(m.Presses, sentPress{payload, mods})

	if m.OnPress != nil {
		m.OnPress()
	}

	return m.PressError
}

func (m *InjectorMock) SendRelease() error {
	m.Releases++

	return m.ReleaseError
}

// RedrawerMock counts full and per-key redraw requests.
type RedrawerMock struct {
	Full int
	Keys []*keyboard.Key
}

func (m *RedrawerMock) Redraw(key *keyboard.Key) {
	if key == nil {
		m.Full++

		return
	}

	m.Keys = append(m.Keys, key)
}
