// Command replay_player loads a replaydump bundle and renders it as JSON
// for inspection or downstream piping.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"rocketreplay/tools/replay_player"
)

func main() {
	path := flag.String("path", "", "path to a replaydump bundle directory or manifest.json")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "path flag is required")
		os.Exit(1)
	}

	bundle, err := replayplayer.LoadBundle(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(bundle); err != nil {
		fmt.Fprintln(os.Stderr, "encode error:", err)
		os.Exit(3)
	}
}
