// Package replaycatalog walks a directory tree of replaydump bundles and
// reports their headers, grounded on the teacher's replay catalog
// (tools/replay_catalog/catalog.go) but pointed at this domain's
// ndarray/timeline dump headers instead of match recordings.
package replaycatalog

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rocketreplay/internal/replaydump"
)

// Entry captures a replaydump header alongside its resolved archive path.
type Entry struct {
	HeaderPath  string              `json:"header_path"`
	ArchivePath string              `json:"archive_path"`
	Header      replaydump.Header   `json:"header"`
}

// List walks the directory tree rooted at root and returns every parsed
// header.json sidecar found, sorted by source replay then archive path.
func List(root string) ([]Entry, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root directory must be provided")
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root must be a directory")
	}

	var entries []Entry
	//1.- Walk the directory tree searching for header.json sidecars.
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || d.Name() != "header.json" {
			return nil
		}
		header, err := replaydump.ReadHeader(path)
		if err != nil {
			return err
		}
		archivePath := header.ArchivePointer
		if !filepath.IsAbs(archivePath) {
			archivePath = filepath.Join(filepath.Dir(path), archivePath)
		}
		entries = append(entries, Entry{HeaderPath: path, ArchivePath: archivePath, Header: header})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Header.SourceReplay == entries[j].Header.SourceReplay {
			return entries[i].ArchivePath < entries[j].ArchivePath
		}
		return entries[i].Header.SourceReplay < entries[j].Header.SourceReplay
	})
	return entries, nil
}

// MarshalEntries produces a stable JSON representation of the entries for
// CLI output.
func MarshalEntries(entries []Entry) ([]byte, error) {
	//1.- Marshal with indentation to keep CLI output legible for operators.
	return json.MarshalIndent(entries, "", "  ")
}
