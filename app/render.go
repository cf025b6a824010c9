package app

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockmap/ecs"
	"github.com/plus3/blockmap/game"
	"github.com/plus3/blockmap/sprite"
	"github.com/plus3/blockmap/tilemap"
)

// SpritePixelsPerUnit sizes sprites of entities without a Block.
const SpritePixelsPerUnit = 4.0

var (
	hoverTileColor  = color.NRGBA{R: 0xff, G: 0xd8, B: 0x66, A: 0xff}
	hoverBlockColor = color.NRGBA{R: 0x66, G: 0xd9, B: 0xef, A: 0xff}
)

// Screen is the render target for the current Draw call.
type Screen struct {
	*ebiten.Image
}

type sheetImages struct {
	sheet   *sprite.Sheet
	sprites []*ebiten.Image
}

type spriteItem struct {
	*game.Transform
	*game.SpriteRender
	Block *game.Block `ecs:"optional"`
}

// RenderSystem draws tile maps, then sprites by increasing z, then the
// hover outlines.
type RenderSystem struct {
	Cameras ecs.Query[struct {
		*game.Transform
		*game.Camera
	}]
	Maps ecs.Query[struct {
		*game.Transform
		*game.TileMap
	}]
	Sprites ecs.Query[spriteItem]

	Screen     ecs.Singleton[Screen]
	Assets     ecs.Singleton[game.Assets]
	Hover      ecs.Singleton[game.Hover]
	ClearColor color.Color

	images map[sprite.Handle]*sheetImages
	order  []spriteItem
}

// view maps world units to pixels for one frame.
type view struct {
	cam        *game.Camera
	t          *game.Transform
	w, h       int
	ppuX, ppuY float64
}

func (v view) toScreen(wx, wy float64) (float64, float64) {
	return game.WorldToScreen(v.cam, v.t, wx, wy, v.w, v.h)
}

// Execute draws the frame into the Screen singleton.
func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	if s.ClearColor != nil {
		screen.Fill(s.ClearColor)
	}

	_, cam, ok := s.Cameras.First()
	if !ok {
		return
	}
	bounds := screen.Bounds()
	zoom := cam.Camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	v := view{
		cam:  cam.Camera,
		t:    cam.Transform,
		w:    bounds.Dx(),
		h:    bounds.Dy(),
		ppuX: float64(bounds.Dx()) * zoom / cam.Camera.Projection.Width,
		ppuY: float64(bounds.Dy()) * zoom / cam.Camera.Projection.Height,
	}

	for m := range s.Maps.Values() {
		s.drawMap(screen.Image, v, m.Transform, m.TileMap)
	}

	s.order = s.order[:0]
	for item := range s.Sprites.Values() {
		s.order = append(s.order, item)
	}
	slices.SortStableFunc(s.order, func(a, b spriteItem) int {
		return cmp.Compare(a.Transform.Translation.Z, b.Transform.Translation.Z)
	})
	for _, item := range s.order {
		s.drawSprite(screen.Image, v, item)
	}

	s.drawHover(screen.Image, v, frame.Storage)
}

func (s *RenderSystem) sheet(h sprite.Handle) *sheetImages {
	assets := s.Assets.Get()
	if assets == nil || assets.Sprites == nil {
		return nil
	}
	sheet, ok := assets.Sprites.Get(h)
	if !ok {
		return nil
	}
	if s.images == nil {
		s.images = make(map[sprite.Handle]*sheetImages)
	}

	cached := s.images[h]
	if cached != nil && cached.sheet == sheet {
		return cached
	}

	// reloaded or first use
	full := ebiten.NewImageFromImage(sheet.Image)
	cached = &sheetImages{sheet: sheet, sprites: make([]*ebiten.Image, sheet.Len())}
	for i, sp := range sheet.Sprites {
		cached.sprites[i] = full.SubImage(sp.Bounds).(*ebiten.Image)
	}
	s.images[h] = cached
	return cached
}

func (s *RenderSystem) drawMap(dst *ebiten.Image, v view, t *game.Transform, tm *game.TileMap) {
	images := s.sheet(tm.Sheet)
	if images == nil {
		return
	}
	tileW, tileH := tm.Map.TileSize()
	pw, ph := tileW*v.ppuX, tileH*v.ppuY

	for c, tile := range tm.Map.All() {
		if tile.Sprite == tilemap.NoSprite || tile.Sprite >= len(images.sprites) {
			continue
		}
		wx, wy := tm.Map.ToWorld(t.Translation.X, t.Translation.Y, c)
		sx, sy := v.toScreen(wx, wy)
		x0, y0 := sx-pw/2, sy-ph/2
		if x0 > float64(v.w) || y0 > float64(v.h) || x0+pw < 0 || y0+ph < 0 {
			continue
		}

		img := images.sprites[tile.Sprite]
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(pw/float64(img.Bounds().Dx()), ph/float64(img.Bounds().Dy()))
		op.GeoM.Translate(x0, y0)
		dst.DrawImage(img, op)
	}
}

func (s *RenderSystem) drawSprite(dst *ebiten.Image, v view, item spriteItem) {
	images := s.sheet(item.SpriteRender.Sheet)
	if images == nil {
		return
	}
	sp, ok := images.sheet.Sprite(item.SpriteRender.Index)
	if !ok {
		return
	}
	img := images.sprites[item.SpriteRender.Index]

	px, py := float64(sp.Bounds.Dx()), float64(sp.Bounds.Dy())
	scale := item.Transform.UniformScale()
	worldW, worldH := px/SpritePixelsPerUnit*scale, py/SpritePixelsPerUnit*scale
	if item.Block != nil {
		worldW, worldH = item.Block.Width*scale, item.Block.Height*scale
	}
	sw, sh := worldW*v.ppuX, worldH*v.ppuY

	ax, ay := sp.Anchor()
	sx, sy := v.toScreen(item.Transform.Translation.X, item.Transform.Translation.Y)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-ax, -ay)
	op.GeoM.Scale(sw/px, sh/py)
	op.GeoM.Translate(sx, sy)
	dst.DrawImage(img, op)
}

func (s *RenderSystem) drawHover(dst *ebiten.Image, v view, storage *ecs.Storage) {
	h := s.Hover.Get()
	if h == nil || !h.Valid {
		return
	}

	if h.HasTile {
		tm := ecs.ReadComponent[game.TileMap](storage, h.Map)
		t := ecs.ReadComponent[game.Transform](storage, h.Map)
		if tm != nil && t != nil {
			tileW, tileH := tm.Map.TileSize()
			wx, wy := tm.Map.ToWorld(t.Translation.X, t.Translation.Y, h.Tile)
			sx, sy := v.toScreen(wx-tileW/2, wy+tileH/2)
			vector.StrokeRect(dst, float32(sx), float32(sy), float32(tileW*v.ppuX), float32(tileH*v.ppuY), 2, hoverTileColor, false)
		}
	}

	if h.HasEntity {
		b := ecs.ReadComponent[game.Block](storage, h.Entity)
		t := ecs.ReadComponent[game.Transform](storage, h.Entity)
		if b != nil && t != nil {
			scale := t.UniformScale()
			w, hh := b.Width*scale, b.Height*scale
			sx, sy := v.toScreen(t.Translation.X-w/2, t.Translation.Y+hh/2)
			vector.StrokeRect(dst, float32(sx), float32(sy), float32(w*v.ppuX), float32(hh*v.ppuY), 2, hoverBlockColor, false)
		}
	}
}
