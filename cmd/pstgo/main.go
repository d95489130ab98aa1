// Command pstgo is the CLI front end over the pstgo façade (spec.md §6):
// subcommands for a subset of the external entry points (graph
// info/junctions, reach, integration, choice, isovist, raster-compare),
// each driven by a YAML
// descriptor file rather than a pile of flags, matching the teacher
// CLI's config-file-over-flags shape.
package main

import (
	"log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("pstgo: %v", err)
	}
}
