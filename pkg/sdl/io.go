package sdl

import (
	"fmt"

	"github.com/mnafees/c8vm/internal/sound"
	"github.com/mnafees/c8vm/internal/vm"
	"github.com/veandco/go-sdl2/sdl"
)

// IO is the SDL input/output abstraction layer for the VM
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface
	audio   sdl.AudioDeviceID

	scale       int32
	screenColor uint32
	spriteColor uint32

	keys [vm.KeyCount]bool
	beep []byte
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(scale int, screenColor, spriteColor uint32) *IO {
	return &IO{
		scale:       int32(scale),
		screenColor: screenColor,
		spriteColor: spriteColor,
	}
}

// SetupWindow initialises and sets up the main SDL window
func (io *IO) SetupWindow(title string) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		vm.ScreenWidth*io.scale, vm.ScreenHeight*io.scale, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	if err := io.surface.FillRect(nil, io.screenColor); err != nil {
		return fmt.Errorf("clearing window surface: %w", err)
	}
	return io.window.UpdateSurface()
}

// SetupAudio opens the default audio device for the beep sample
func (io *IO) SetupAudio(beep sound.Sample) error {
	want := &sdl.AudioSpec{
		Freq:     int32(beep.Rate),
		Format:   sdl.AUDIO_S16LSB,
		Channels: 1,
		Samples:  2048,
	}
	dev, err := sdl.OpenAudioDevice("", false, want, nil, 0)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	io.audio = dev
	io.beep = beep.PCM16()
	sdl.PauseAudioDevice(io.audio, false)
	return nil
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.audio != 0 {
		sdl.CloseAudioDevice(io.audio)
	}
	if io.window != nil {
		io.window.Destroy()
	}
	sdl.Quit()
}

// Poll drains the SDL event queue and returns the key pad state
func (io *IO) Poll() ([vm.KeyCount]bool, bool, error) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			if t.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				return io.keys, true, nil
			}
			code := keymap(t.Keysym.Scancode)
			if code == -1 {
				continue
			}
			switch t.GetType() {
			case sdl.KEYDOWN:
				io.keys[code] = true
			case sdl.KEYUP:
				io.keys[code] = false
			}
		case *sdl.QuitEvent:
			return io.keys, true, nil
		}
	}
	return io.keys, false, nil
}

// Render draws the display cells as scaled rectangles
func (io *IO) Render(display [vm.DisplaySize]uint8) error {
	if err := io.surface.FillRect(nil, io.screenColor); err != nil {
		return err
	}
	for i, cell := range display {
		if cell == 0 {
			continue
		}
		x := int32(i % vm.ScreenWidth)
		y := int32(i / vm.ScreenWidth)
		rect := &sdl.Rect{X: x * io.scale, Y: y * io.scale, W: io.scale, H: io.scale}
		if err := io.surface.FillRect(rect, io.spriteColor); err != nil {
			return err
		}
	}
	return io.window.UpdateSurface()
}

// Beep queues the beep sample on the audio device. Without an audio device
// the beep is dropped.
func (io *IO) Beep() error {
	if io.audio == 0 || len(io.beep) == 0 {
		return nil
	}
	return sdl.QueueAudio(io.audio, io.beep)
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
var scancodes = map[sdl.Scancode]int8{
	sdl.SCANCODE_1: 0x1,
	sdl.SCANCODE_2: 0x2,
	sdl.SCANCODE_3: 0x3,
	sdl.SCANCODE_4: 0xC,
	sdl.SCANCODE_Q: 0x4,
	sdl.SCANCODE_W: 0x5,
	sdl.SCANCODE_E: 0x6,
	sdl.SCANCODE_R: 0xD,
	sdl.SCANCODE_A: 0x7,
	sdl.SCANCODE_S: 0x8,
	sdl.SCANCODE_D: 0x9,
	sdl.SCANCODE_F: 0xE,
	sdl.SCANCODE_Z: 0xA,
	sdl.SCANCODE_X: 0x0,
	sdl.SCANCODE_C: 0xB,
	sdl.SCANCODE_V: 0xF,
}

func keymap(code sdl.Scancode) int8 {
	if k, ok := scancodes[code]; ok {
		return k
	}
	return -1
}
