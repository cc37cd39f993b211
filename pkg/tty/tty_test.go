package tty

import (
	"strings"
	"testing"
	"time"

	"github.com/mnafees/c8vm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
)

func TestKeyFor(t *testing.T) {
	k, ok := keyFor('x')
	assert.True(t, ok)
	assert.Equal(t, 0x0, k)

	k, ok = keyFor('V')
	assert.True(t, ok)
	assert.Equal(t, 0xF, k)

	_, ok = keyFor('p')
	assert.False(t, ok)
}

func TestKeypad_Hold(t *testing.T) {
	start := time.Unix(100, 0)
	k := keypad{hold: 100 * time.Millisecond}

	k.feed([]byte("w4"), start)
	state := k.state(start.Add(50 * time.Millisecond))
	assert.True(t, state[0x5])
	assert.True(t, state[0xC])
	assert.False(t, state[0x0])

	state = k.state(start.Add(100 * time.Millisecond))
	assert.False(t, state[0x5])

	// auto-repeat keeps the key held
	k.feed([]byte("w"), start.Add(90*time.Millisecond))
	state = k.state(start.Add(150 * time.Millisecond))
	assert.True(t, state[0x5])
	assert.False(t, state[0xC])
	assert.False(t, k.quit)
}

func TestKeypad_Quit(t *testing.T) {
	k := keypad{hold: DefaultHold}
	k.feed([]byte{'a', keyEscape}, time.Unix(0, 0))
	assert.True(t, k.quit)

	k = keypad{hold: DefaultHold}
	k.feed([]byte{keyCtrlC}, time.Unix(0, 0))
	assert.True(t, k.quit)
}

func TestKeypad_EscapeSequence(t *testing.T) {
	now := time.Unix(0, 0)
	k := keypad{hold: DefaultHold}

	k.feed([]byte("\x1b[A"), now) // up arrow
	k.feed([]byte("\x1bOP"), now) // F1
	k.feed([]byte("\x1b[1;2C"), now)
	assert.False(t, k.quit)

	// 'A' and 'C' inside the sequences are not key pad presses
	state := k.state(now)
	assert.False(t, state[0x7])
	assert.False(t, state[0xB])

	k.feed([]byte("s\x1b[B"), now)
	assert.False(t, k.quit)
	assert.True(t, k.state(now)[0x8])
}

// keystrokes is a terminal that always has more input
type keystrokes struct{}

func (keystrokes) Read(p []byte) (int, error) {
	return copy(p, "w"), nil
}

func TestTerminal_ReaderExitsWhenClosed(t *testing.T) {
	tt := &Terminal{
		src:   keystrokes{},
		input: make(chan []byte),
		errs:  make(chan error),
		done:  make(chan struct{}),
	}

	exited := make(chan struct{})
	go func() {
		tt.read()
		close(exited)
	}()

	// nobody polls, the reader is blocked handing over input
	close(tt.done)
	select {
	case <-exited:
	case <-time.After(time.Second):
		t.Fatal("reader did not exit")
	}
}

func TestFrame(t *testing.T) {
	var display [vm.DisplaySize]uint8
	display[0] = 1                 // (0, 0)
	display[vm.ScreenWidth+1] = 1  // (1, 1)
	display[2] = 1                 // (2, 0)
	display[vm.ScreenWidth+2] = 1  // (2, 1)
	display[31*vm.ScreenWidth] = 1 // (0, 31)

	lines := strings.Split(frame(display), "\r\n")
	assert.Len(t, lines, vm.ScreenHeight/2+1)
	assert.Equal(t, "", lines[vm.ScreenHeight/2])

	first := []rune(lines[0])
	assert.Len(t, first, vm.ScreenWidth)
	assert.Equal(t, '▀', first[0])
	assert.Equal(t, '▄', first[1])
	assert.Equal(t, '█', first[2])
	assert.Equal(t, ' ', first[3])

	last := []rune(lines[vm.ScreenHeight/2-1])
	assert.Equal(t, '▄', last[0])
}
