package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bnema/tiler/internal/domain/entity"
)

// Format is the on-disk encoding of layout and script documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat validates a format name. Empty selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or toml)", s)
	}
}

// FormatFromPath picks the format from a file extension, JSON by default.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

func decode(r io.Reader, f Format, v any) error {
	switch f {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(v); err != nil {
			return fmt.Errorf("decode toml: %w", err)
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
	}
	return nil
}

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(v)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func readFile(path string) (io.Reader, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// DecodeLayout reads a layout snapshot and checks it restores cleanly.
func DecodeLayout(r io.Reader, f Format) (*entity.LayoutSnapshot, error) {
	snap := &entity.LayoutSnapshot{}
	if err := decode(r, f, snap); err != nil {
		return nil, err
	}
	if snap.Version == 0 {
		snap.Version = entity.LayoutSnapshotVersion
	}
	if _, err := entity.StateFromSnapshot(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// EncodeLayout writes snap in format f.
func EncodeLayout(w io.Writer, snap *entity.LayoutSnapshot, f Format) error {
	return encode(w, f, snap)
}

// LoadLayout reads a layout file. "-" reads JSON from stdin.
func LoadLayout(path string) (*entity.LayoutSnapshot, error) {
	r, err := readFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	snap, err := DecodeLayout(r, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", path, err)
	}
	return snap, nil
}

// SaveLayout writes snap to path, or to stdout when path is empty or "-".
func SaveLayout(path string, snap *entity.LayoutSnapshot, f Format) error {
	if path == "" || path == "-" {
		return EncodeLayout(os.Stdout, snap, f)
	}
	var buf bytes.Buffer
	if err := EncodeLayout(&buf, snap, f); err != nil {
		return err
	}
	const filePerm = 0o644
	return os.WriteFile(path, buf.Bytes(), filePerm)
}

// LayoutFile is a port.LayoutStore backed by a single file.
type LayoutFile struct {
	Path   string
	Format Format
}

// NewLayoutFile returns a store for path, inferring the format from its extension.
func NewLayoutFile(path string) *LayoutFile {
	return &LayoutFile{Path: path, Format: FormatFromPath(path)}
}

// SaveLayout implements port.LayoutStore.
func (l *LayoutFile) SaveLayout(ctx context.Context, snap *entity.LayoutSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return SaveLayout(l.Path, snap, l.Format)
}
