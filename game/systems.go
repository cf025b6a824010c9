package game

import (
	"log"

	"github.com/plus3/blockmap/ecs"
	"github.com/plus3/blockmap/pick"
)

// SyncPickSpace replaces the contents of space with the bounds of every
// block entity.
func SyncPickSpace(storage *ecs.Storage, space *pick.Space) {
	space.Clear()
	blocks := ecs.NewView[struct {
		ecs.EntityId
		*Transform
		*Block
	}](storage)
	for id, b := range blocks.Iter() {
		addBlock(space, id, b.Transform, b.Block)
	}
}

func addBlock(space *pick.Space, id ecs.EntityId, t *Transform, b *Block) {
	scale := t.UniformScale()
	halfW, halfH := b.Width*scale/2, b.Height*scale/2
	x, y := t.Translation.X, t.Translation.Y
	space.Add(id, x-halfW, y-halfH, x+halfW, y+halfH)
}

// PickSyncSystem keeps the Picking singleton in step with the blocks.
type PickSyncSystem struct {
	Blocks ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Block
	}]
	Picking ecs.Singleton[Picking]
}

// Execute rebuilds the pick space, creating the Picking singleton if needed.
func (s *PickSyncSystem) Execute(frame *ecs.UpdateFrame) {
	p := s.Picking.Get()
	if p == nil || p.Space == nil {
		s.Picking.Set(Picking{Space: pick.New()})
		p = s.Picking.Get()
	}
	p.Space.Clear()
	for id, b := range s.Blocks.Iter() {
		addBlock(p.Space, id, b.Transform, b.Block)
	}
}

// HoverLogSystem logs hover changes. A nil Logger only counts them.
type HoverLogSystem struct {
	Logger  *log.Logger
	Hover   ecs.Singleton[Hover]
	Changes int
}

// Execute counts and logs the hover when it changed this tick.
func (s *HoverLogSystem) Execute(frame *ecs.UpdateFrame) {
	h := s.Hover.Get()
	if h == nil || !h.Changed {
		return
	}
	s.Changes++
	if s.Logger == nil {
		return
	}
	switch {
	case h.HasEntity:
		s.Logger.Printf("hover: tile %v entity %d", h.Tile, h.Entity)
	case h.HasTile:
		s.Logger.Printf("hover: tile %v", h.Tile)
	default:
		s.Logger.Printf("hover: none")
	}
}
