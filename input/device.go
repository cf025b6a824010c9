package input

// FakeDevice is a Device driven by tests and headless runs.
type FakeDevice struct {
	Keys          map[string]bool
	X, Y          int
	Width, Height int
}

// NewFakeDevice returns a device with no keys held and a window of the
// given size.
func NewFakeDevice(width, height int) *FakeDevice {
	return &FakeDevice{
		Keys:   make(map[string]bool),
		Width:  width,
		Height: height,
	}
}

func (d *FakeDevice) Press(keys ...string) {
	for _, k := range keys {
		d.Keys[k] = true
	}
}

func (d *FakeDevice) Release(keys ...string) {
	for _, k := range keys {
		delete(d.Keys, k)
	}
}

// MoveCursor places the cursor in window coordinates.
func (d *FakeDevice) MoveCursor(x, y int) {
	d.X, d.Y = x, y
}

func (d *FakeDevice) KeyPressed(name string) bool { return d.Keys[name] }
func (d *FakeDevice) CursorPosition() (int, int) { return d.X, d.Y }
func (d *FakeDevice) WindowSize() (int, int) { return d.Width, d.Height }
