// Command replay_catalog lists the ndarray/timeline dump bundles found
// under a directory tree, reading each bundle's header.json sidecar.
package main

import (
	"flag"
	"fmt"
	"os"

	"rocketreplay/tools/replay_catalog"
)

func main() {
	root := flag.String("dir", ".", "directory containing replaydump bundles")
	jsonFlag := flag.Bool("json", false, "emit JSON instead of human-readable output")
	flag.Parse()

	entries, err := replaycatalog.List(*root)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *jsonFlag {
		payload, err := replaycatalog.MarshalEntries(entries)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(payload))
		return
	}

	for _, entry := range entries {
		fmt.Printf("%s (%s, schema %d)\n", entry.ArchivePath, entry.Header.CollectorKind, entry.Header.SchemaVersion)
		fmt.Printf("  source: %s\n", entry.Header.SourceReplay)
		fmt.Printf("  frames: %d\n", entry.Header.FrameCount)
		if len(entry.Header.TeamZero) > 0 || len(entry.Header.TeamOne) > 0 {
			fmt.Printf("  team 0: %v\n", entry.Header.TeamZero)
			fmt.Printf("  team 1: %v\n", entry.Header.TeamOne)
		}
		fmt.Printf("  header: %s\n", entry.HeaderPath)
	}
}
