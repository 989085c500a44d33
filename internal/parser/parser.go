// Package parser decodes FIT, GPX and TCX activity files into track
// points.
package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sstent/trackedit/internal/track"
)

var (
	ErrNoTrackData     = errors.New("no track data found")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// Parser appends the points of an activity file to a track, in file
// order. The track is not validated.
type Parser interface {
	ParseFile(path string, trk *track.Track) error
	ParseData(name string, data []byte, trk *track.Track) error
}

func readFile(p Parser, path string, trk *track.Track) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := p.ParseData(filepath.Base(path), data, trk); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// NewParser selects a parser by file extension, then by content.
func NewParser(filename string) (Parser, error) {
	switch FileTypeFromExt(filename) {
	case FileTypeFIT:
		return NewFITParser(), nil
	case FileTypeTCX:
		return NewTCXParser(), nil
	case FileTypeGPX:
		return NewGPXParser(), nil
	}

	fileType, err := DetectFileType(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	return newParserFor(fileType)
}

// NewParserFromData selects a parser by content.
func NewParserFromData(data []byte) (Parser, error) {
	return newParserFor(DetectFileTypeFromData(data))
}

func newParserFor(fileType FileType) (Parser, error) {
	switch fileType {
	case FileTypeFIT:
		return NewFITParser(), nil
	case FileTypeTCX:
		return NewTCXParser(), nil
	case FileTypeGPX:
		return NewGPXParser(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, fileType)
}

// ParseFile parses path with the parser its type calls for.
func ParseFile(path string, trk *track.Track) error {
	p, err := NewParser(path)
	if err != nil {
		return err
	}
	return p.ParseFile(path, trk)
}

// Load parses path into a new track, validates it and runs the metrics
// pass.
func Load(path string, opts track.Options) (*track.Track, error) {
	trk := track.New(opts)
	if err := ParseFile(path, trk); err != nil {
		return nil, err
	}
	if err := trk.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	trk.ComputeMetrics()
	return trk, nil
}
