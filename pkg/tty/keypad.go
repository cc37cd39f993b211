package tty

import (
	"time"

	"github.com/mnafees/c8vm/internal/vm"
)

// DefaultHold is how long a key counts as pressed after its last keystroke.
// Terminals report key presses and auto-repeat but never key releases.
const DefaultHold = 150 * time.Millisecond

const (
	keyEscape = 0x1B
	keyCtrlC  = 0x03
)

// Same layout as the SDL frontend, lower case
var keys = map[byte]int{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

func keyFor(b byte) (int, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	k, ok := keys[b]
	return k, ok
}

// keypad turns a stream of keystrokes into key pad state
type keypad struct {
	hold    time.Duration
	pressed [vm.KeyCount]time.Time
	quit    bool
}

// feed processes the keystrokes of one read received at now. An escape on its
// own quits; an escape followed by more bytes starts an arrow or function key
// sequence and the rest of the read is dropped.
func (k *keypad) feed(input []byte, now time.Time) {
	for i, b := range input {
		switch {
		case b == keyCtrlC:
			k.quit = true
		case b == keyEscape:
			if i == len(input)-1 {
				k.quit = true
			}
			return
		default:
			if key, ok := keyFor(b); ok {
				k.pressed[key] = now
			}
		}
	}
}

// state returns the keys pressed within the hold window before now
func (k *keypad) state(now time.Time) [vm.KeyCount]bool {
	var state [vm.KeyCount]bool
	for i, t := range k.pressed {
		state[i] = !t.IsZero() && now.Sub(t) < k.hold
	}
	return state
}
