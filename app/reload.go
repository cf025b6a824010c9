package app

import (
	"log"
	"strings"

	"github.com/plus3/blockmap/config"
	"github.com/plus3/blockmap/game"
)

// reload applies changed asset files. A file that fails to load is logged
// and the previous version stays active.
func (g *Game) reload(paths []string) {
	for _, path := range paths {
		switch {
		case path == config.BindingsFile:
			bindings, err := config.LoadBindings(g.assets)
			if err != nil {
				log.Printf("app: reload: %v", err)
				continue
			}
			if err := g.device.SetBindings(bindings); err != nil {
				log.Printf("app: reload %s: %v", path, err)
				continue
			}
			g.handler.SetBindings(bindings)

		case path == config.UIFile:
			layout, err := config.LoadUI(g.assets)
			if err != nil {
				log.Printf("app: reload: %v", err)
				continue
			}
			if err := g.overlay.Rebuild(layout); err != nil {
				log.Printf("app: reload %s: %v", path, err)
				continue
			}

		case path == config.DisplayFile:
			display, err := config.LoadDisplay(g.assets)
			if err != nil {
				log.Printf("app: reload: %v", err)
				continue
			}
			applyDisplay(display)
			g.render.ClearColor = display.ClearColor.NRGBA

		case strings.HasPrefix(path, "images/"):
			var assets *game.Assets
			if !g.storage.ReadSingleton(&assets) {
				continue
			}
			n, err := assets.Sprites.Reload(path)
			if err != nil {
				log.Printf("app: reload: %v", err)
				continue
			}
			if n == 0 {
				continue
			}

		default:
			continue
		}
		log.Printf("app: reloaded %s", path)
	}
}
