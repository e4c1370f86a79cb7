// Package input turns device key events into normalized movement intent.
package input

// Key is a logical control, independent of the device layer.
type Key uint8

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyJump
)

// Intent is the per-tick movement request consumed by locomotion.
// Forward and Strafe are always in {-1, 0, 1}.
type Intent struct {
	Forward int
	Strafe  int
	Jump    bool // Edge-triggered; true at most once per press
}

// Moving reports whether any horizontal intent is present.
func (i Intent) Moving() bool {
	return i.Forward != 0 || i.Strafe != 0
}

// JumpLatch turns a held jump key into a one-shot request.
type JumpLatch struct {
	held  bool
	armed bool
}

// Press records a key-down. Repeated presses while held do not re-arm.
func (l *JumpLatch) Press() {
	if !l.held {
		l.armed = true
	}
	l.held = true
}

// Release records a key-up and drops any unconsumed request.
func (l *JumpLatch) Release() {
	l.held = false
	l.armed = false
}

// Consume returns true once per press, then false until the next press.
func (l *JumpLatch) Consume() bool {
	if l.armed {
		l.armed = false
		return true
	}
	return false
}

// Controls tracks key state. The most recent key on an axis wins, and
// releasing either key on that axis zeroes it.
type Controls struct {
	forward int
	strafe  int
	jump    JumpLatch
}

// KeyDown records a key press.
func (c *Controls) KeyDown(k Key) {
	switch k {
	case KeyForward:
		c.forward = 1
	case KeyBack:
		c.forward = -1
	case KeyLeft:
		c.strafe = -1
	case KeyRight:
		c.strafe = 1
	case KeyJump:
		c.jump.Press()
	}
}

// KeyUp records a key release.
func (c *Controls) KeyUp(k Key) {
	switch k {
	case KeyForward, KeyBack:
		c.forward = 0
	case KeyLeft, KeyRight:
		c.strafe = 0
	case KeyJump:
		c.jump.Release()
	}
}

// CheckJump consumes a pending jump request.
func (c *Controls) CheckJump() bool {
	return c.jump.Consume()
}

// Intent returns the current movement intent and consumes the jump request.
func (c *Controls) Intent() Intent {
	return Intent{
		Forward: c.forward,
		Strafe:  c.strafe,
		Jump:    c.CheckJump(),
	}
}
