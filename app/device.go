package app

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/blockmap/config"
)

// KeyDevice reads the keyboard and cursor through ebiten. Key names are
// ebiten key names ("A", "ArrowLeft", "Escape"), resolved once per set of
// bindings.
type KeyDevice struct {
	mu            sync.RWMutex
	keys          map[string]ebiten.Key
	width, height int
}

// NewKeyDevice resolves every key named in bindings.
func NewKeyDevice(bindings config.Bindings) (*KeyDevice, error) {
	d := &KeyDevice{}
	if err := d.SetBindings(bindings); err != nil {
		return nil, err
	}
	return d, nil
}

// SetBindings resolves the keys of new bindings. On error the previous keys
// stay in use.
func (d *KeyDevice) SetBindings(bindings config.Bindings) error {
	keys := make(map[string]ebiten.Key)
	for _, name := range bindings.Keys() {
		if _, ok := keys[name]; ok {
			continue
		}
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return fmt.Errorf("app: key %q: %w", name, err)
		}
		keys[name] = k
	}

	d.mu.Lock()
	d.keys = keys
	d.mu.Unlock()
	return nil
}

func (d *KeyDevice) KeyPressed(name string) bool {
	d.mu.RLock()
	k, ok := d.keys[name]
	d.mu.RUnlock()
	return ok && ebiten.IsKeyPressed(k)
}

func (d *KeyDevice) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

// WindowSize returns the logical screen size from the last Layout call.
func (d *KeyDevice) WindowSize() (int, int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.width, d.height
}

func (d *KeyDevice) setSize(w, h int) {
	d.mu.Lock()
	d.width, d.height = w, h
	d.mu.Unlock()
}
