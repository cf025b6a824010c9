package main

import (
	"flag"
	"log"

	"github.com/plus3/blockmap/app"
	"github.com/plus3/blockmap/assets"
)

func main() {
	assetsDir := flag.String("assets", "", "Directory whose files override the embedded assets.")
	debug := flag.Bool("debug", false, "Show the ImGui debug windows.")
	watch := flag.Bool("watch", false, "Reload configuration and images from -assets when they change.")
	flag.Parse()

	g, err := app.New(app.Options{
		Assets:    assets.Overlay(*assetsDir),
		AssetsDir: *assetsDir,
		Debug:     *debug,
		Watch:     *watch,
	})
	if err != nil {
		log.Fatalf("blockmap: %v", err)
	}

	if err := g.Run(); err != nil {
		log.Fatalf("blockmap: %v", err)
	}
}
