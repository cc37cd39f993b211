// Package tty is a terminal frontend. The display is drawn with half block
// characters, two CHIP-8 rows per text line, and the terminal is put in raw
// mode to read the key pad.
package tty

import (
	"fmt"
	"io"
	"strings"
	"time"

	tm "github.com/buger/goterm"
	"github.com/mnafees/c8vm/internal/vm"
	"github.com/pkg/term"
)

// Terminal implements the host.Frontend interface on a character terminal
type Terminal struct {
	t      *term.Term
	src    io.Reader
	input  chan []byte
	errs   chan error
	done   chan struct{}
	keypad keypad
	now    func() time.Time
}

// Open puts the terminal device in raw mode and starts reading keystrokes
func Open(device string, hold time.Duration) (*Terminal, error) {
	t, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("opening terminal %s: %w", device, err)
	}

	tt := &Terminal{
		t:      t,
		src:    t,
		input:  make(chan []byte, 16),
		errs:   make(chan error, 1),
		done:   make(chan struct{}),
		keypad: keypad{hold: hold},
		now:    time.Now,
	}
	go tt.read()

	tm.Clear()
	tm.Flush()
	return tt, nil
}

func (tt *Terminal) read() {
	for {
		buf := make([]byte, 16)
		n, err := tt.src.Read(buf)
		if err != nil {
			select {
			case tt.errs <- err:
			case <-tt.done:
			}
			return
		}
		select {
		case tt.input <- buf[:n]:
		case <-tt.done:
			return
		}
	}
}

// Close restores the terminal to its original mode. The reader goroutine
// exits with its pending read.
func (tt *Terminal) Close() error {
	close(tt.done)
	if err := tt.t.Restore(); err != nil {
		return err
	}
	return tt.t.Close()
}

// Poll returns the key pad state built from the keystrokes received so far
func (tt *Terminal) Poll() ([vm.KeyCount]bool, bool, error) {
	now := tt.now()
	for {
		select {
		case b := <-tt.input:
			tt.keypad.feed(b, now)
			continue
		case err := <-tt.errs:
			return tt.keypad.state(now), true, err
		default:
		}
		break
	}
	return tt.keypad.state(now), tt.keypad.quit, nil
}

// Render redraws the whole display
func (tt *Terminal) Render(display [vm.DisplaySize]uint8) error {
	tm.MoveCursor(1, 1)
	if _, err := tm.Print(frame(display)); err != nil {
		return err
	}
	tm.Flush()
	return nil
}

// Beep rings the terminal bell
func (tt *Terminal) Beep() error {
	_, err := tm.Print("\a")
	tm.Flush()
	return err
}

// frame renders the display as text. Raw mode needs explicit carriage
// returns.
func frame(display [vm.DisplaySize]uint8) string {
	s := strings.Builder{}
	for y := 0; y < vm.ScreenHeight; y += 2 {
		for x := 0; x < vm.ScreenWidth; x++ {
			top := display[y*vm.ScreenWidth+x] == 1
			bottom := display[(y+1)*vm.ScreenWidth+x] == 1
			switch {
			case top && bottom:
				s.WriteRune('█')
			case top:
				s.WriteRune('▀')
			case bottom:
				s.WriteRune('▄')
			default:
				s.WriteRune(' ')
			}
		}
		s.WriteString("\r\n")
	}
	return s.String()
}
