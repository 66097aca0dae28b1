package replaydump

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// HeaderSchemaVersion is bumped whenever the on-disk Header shape changes
// incompatibly.
const HeaderSchemaVersion = 1

// Header is the small sidecar JSON file written alongside every dump
// archive, describing how the run was produced without requiring a reader
// to decompress the archive itself.
type Header struct {
	SchemaVersion  int      `json:"schema_version"`
	SourceReplay   string   `json:"source_replay"`
	CollectorKind  string   `json:"collector_kind"`
	FrameCount     int      `json:"frame_count"`
	TeamZero       []string `json:"team_zero"`
	TeamOne        []string `json:"team_one"`
	ArchivePointer string   `json:"archive_pointer"`
}

// Validate checks that the header carries enough information to locate and
// interpret its companion archive.
func (h Header) Validate() error {
	if h.SchemaVersion != HeaderSchemaVersion {
		return fmt.Errorf("unsupported header schema version %d", h.SchemaVersion)
	}
	if h.ArchivePointer == "" {
		return fmt.Errorf("header missing archive pointer")
	}
	return nil
}

// WriteHeader persists header as indented JSON at path, creating parent
// directories as needed.
func WriteHeader(path string, header Header) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(header, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadHeader loads and validates a Header previously written by WriteHeader.
func ReadHeader(path string) (Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Header{}, err
	}
	var header Header
	if err := json.Unmarshal(data, &header); err != nil {
		return Header{}, err
	}
	if err := header.Validate(); err != nil {
		return Header{}, err
	}
	return header, nil
}
