package vm

// display is the 64 px x 32 px monochrome frame buffer
type display struct {
	cells [DisplaySize]uint8
	dirty bool
}

func cellIndex(x, y int) int {
	x %= ScreenWidth
	if x < 0 {
		x += ScreenWidth
	}
	y %= ScreenHeight
	if y < 0 {
		y += ScreenHeight
	}
	return x + y*ScreenWidth
}

func (d *display) clear() {
	d.cells = [DisplaySize]uint8{}
	d.dirty = true
}

// blit XORs an 8 px wide sprite onto the display at x, y. Each axis wraps
// independently. Returns true if any lit cell was turned off.
func (d *display) blit(x, y uint8, sprite []uint8) bool {
	collision := false
	for row, bits := range sprite {
		for col := 0; col < 8; col++ {
			if bits&(0x80>>col) == 0 {
				continue
			}
			idx := cellIndex(int(x)+col, int(y)+row)
			if d.cells[idx] == 1 {
				collision = true
			}
			d.cells[idx] ^= 1
		}
	}
	d.dirty = true
	return collision
}

func (d *display) flush() bool {
	dirty := d.dirty
	d.dirty = false
	return dirty
}
