// Package weather turns one-shot weather events into spawns and pushes on the
// live world.
package weather

// Kind names a weather event. Besides the built-in kinds, any scripted preset
// name is a valid kind.
type Kind string

const (
	None       Kind = ""
	FireRain   Kind = "fire_rain"
	WaterRain  Kind = "water_rain"
	RainbowSky Kind = "rainbow_sky"
	Storm      Kind = "storm"
)

// Builtin lists the kinds the dispatcher handles without a script.
func Builtin() []Kind {
	return []Kind{FireRain, WaterRain, RainbowSky, Storm}
}

func (k Kind) builtin() bool {
	switch k {
	case FireRain, WaterRain, RainbowSky, Storm:
		return true
	}
	return false
}

// Mailbox holds at most one pending event. A newer post replaces an older
// one that has not been taken yet.
type Mailbox struct {
	pending Kind
}

func (m *Mailbox) Post(k Kind) {
	if m == nil {
		return
	}
	m.pending = k
}

// Take returns the pending event and resets the slot to None.
func (m *Mailbox) Take() Kind {
	if m == nil {
		return None
	}
	k := m.pending
	m.pending = None
	return k
}

func (m *Mailbox) Pending() Kind {
	if m == nil {
		return None
	}
	return m.pending
}
