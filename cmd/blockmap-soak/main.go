package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/plus3/blockmap/assets"
)

func main() {
	ticks := flag.Int("ticks", 3600, "Number of update ticks to run.")
	dt := flag.Float64("dt", 1.0/60, "Seconds per tick.")
	assetsDir := flag.String("assets", "", "Directory whose files override the embedded assets.")
	flag.Parse()

	log.Printf("Running %d ticks...", *ticks)
	report, err := run(assets.Overlay(*assetsDir), *ticks, *dt)
	if err != nil {
		log.Fatalf("blockmap-soak: %v", err)
	}
	log.Println("Run finished.")

	fmt.Println("--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
