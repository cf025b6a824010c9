package sprite

import (
	"fmt"
	"io/fs"
	"sync"
)

// Handle refers to a sheet in a Store. The zero Handle is never issued.
type Handle uint32

type key struct {
	image, meta string
}

// Store owns loaded sheets. Loading the same pair of paths twice returns the
// same Handle.
type Store struct {
	mu     sync.RWMutex
	fsys   fs.FS
	sheets []*Sheet
	byKey  map[key]Handle
}

// NewStore returns an empty store reading sheets from fsys.
func NewStore(fsys fs.FS) *Store {
	return &Store{
		fsys:  fsys,
		byKey: make(map[key]Handle),
	}
}

// Load returns the handle for a sheet, reading it on first use.
func (s *Store) Load(imagePath, metaPath string) (Handle, error) {
	k := key{imagePath, metaPath}

	s.mu.RLock()
	h, ok := s.byKey[k]
	s.mu.RUnlock()
	if ok {
		return h, nil
	}

	sheet, err := Load(s.fsys, imagePath, metaPath)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.byKey[k]; ok {
		return h, nil
	}
	s.sheets = append(s.sheets, sheet)
	h = Handle(len(s.sheets))
	s.byKey[k] = h
	return h, nil
}

// Get returns the sheet behind h.
func (s *Store) Get(h Handle) (*Sheet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if h == 0 || int(h) > len(s.sheets) {
		return nil, false
	}
	return s.sheets[h-1], true
}

// Len returns the number of loaded sheets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sheets)
}

// Reload rereads every sheet that uses path as its image or metadata file.
// Handles stay valid; a sheet that fails to load keeps its previous contents.
func (s *Store) Reload(path string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reloaded := 0
	for i, sheet := range s.sheets {
		if sheet.ImagePath != path && sheet.MetaPath != path {
			continue
		}
		next, err := Load(s.fsys, sheet.ImagePath, sheet.MetaPath)
		if err != nil {
			return reloaded, fmt.Errorf("sprite: reload %s: %w", path, err)
		}
		s.sheets[i] = next
		reloaded++
	}
	return reloaded, nil
}
