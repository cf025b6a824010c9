package app

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/plus3/blockmap/config"
	"github.com/plus3/blockmap/ecs"
	"github.com/plus3/blockmap/game"
	"golang.org/x/image/font/basicfont"
)

var anchors = map[string][2]widget.AnchorLayoutPosition{
	"top_left":     {widget.AnchorLayoutPositionStart, widget.AnchorLayoutPositionStart},
	"top_right":    {widget.AnchorLayoutPositionEnd, widget.AnchorLayoutPositionStart},
	"bottom_left":  {widget.AnchorLayoutPositionStart, widget.AnchorLayoutPositionEnd},
	"bottom_right": {widget.AnchorLayoutPositionEnd, widget.AnchorLayoutPositionEnd},
	"center":       {widget.AnchorLayoutPositionCenter, widget.AnchorLayoutPositionCenter},
}

// Overlay is the text HUD built from a config.UILayout.
type Overlay struct {
	ui     *ebitenui.UI
	face   ebtext.Face
	labels map[string]*widget.Text
}

// NewOverlay builds the labels of layout using the basic 7x13 font.
func NewOverlay(layout config.UILayout) (*Overlay, error) {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	o := &Overlay{face: goFace}
	if err := o.Rebuild(layout); err != nil {
		return nil, err
	}
	return o, nil
}

// Rebuild replaces every label. Text set on labels that survive the rebuild
// is carried over.
func (o *Overlay) Rebuild(layout config.UILayout) error {
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)

	groups := make(map[string]*widget.Container)
	labels := make(map[string]*widget.Text, len(layout.Labels))
	for _, l := range layout.Labels {
		anchor := l.Anchor
		if anchor == "" {
			anchor = "top_left"
		}
		pos, ok := anchors[anchor]
		if !ok {
			return fmt.Errorf("app: label %q: unknown anchor %q", l.ID, l.Anchor)
		}

		group, ok := groups[anchor]
		if !ok {
			group = widget.NewContainer(
				widget.ContainerOpts.Layout(widget.NewRowLayout(
					widget.RowLayoutOpts.Direction(widget.DirectionVertical),
					widget.RowLayoutOpts.Spacing(4),
					widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
				)),
				widget.ContainerOpts.WidgetOpts(
					widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: pos[0], VerticalPosition: pos[1]}),
				),
			)
			groups[anchor] = group
			root.AddChild(group)
		}

		text := l.Text
		if prev, ok := o.labels[l.ID]; ok {
			text = prev.Label
		}
		clr := color.Color(l.Color.NRGBA)
		if l.Color.A == 0 {
			clr = color.White
		}
		label := widget.NewText(widget.TextOpts.Text(text, &o.face, clr))
		group.AddChild(label)
		labels[l.ID] = label
	}

	o.ui = &ebitenui.UI{Container: root}
	o.labels = labels
	return nil
}

// SetText changes a label. Unknown ids are ignored so layouts may drop
// labels.
func (o *Overlay) SetText(id, text string) {
	if l, ok := o.labels[id]; ok {
		l.Label = text
	}
}

func (o *Overlay) Update() {
	o.ui.Update()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.ui.Draw(screen)
}

// LabelSystem writes the published hover into the overlay.
type LabelSystem struct {
	Overlay *Overlay
	Hover   ecs.Singleton[game.Hover]
}

// Execute copies the hover into the mouse, tile and entity labels.
func (s *LabelSystem) Execute(frame *ecs.UpdateFrame) {
	h := s.Hover.Get()
	if h == nil || !h.Valid {
		s.Overlay.SetText("mouse_position", "mouse: -")
		s.Overlay.SetText("hovered_tile", "tile: -")
		s.Overlay.SetText("hovered_entity", "")
		return
	}

	s.Overlay.SetText("mouse_position", fmt.Sprintf("mouse: %.2f, %.2f", h.World.X, h.World.Y))
	if h.HasTile {
		s.Overlay.SetText("hovered_tile", fmt.Sprintf("tile: %d, %d", h.Tile.X, h.Tile.Y))
	} else {
		s.Overlay.SetText("hovered_tile", "tile: -")
	}
	if h.HasEntity {
		s.Overlay.SetText("hovered_entity", fmt.Sprintf("block %d", h.Entity.Index()))
	} else {
		s.Overlay.SetText("hovered_entity", "")
	}
}
