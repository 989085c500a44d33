package parser

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type FileType string

const (
	FileTypeFIT     FileType = "fit"
	FileTypeTCX     FileType = "tcx"
	FileTypeGPX     FileType = "gpx"
	FileTypeUnknown FileType = "unknown"
)

// FileTypeFromExt maps a file name extension to a file type.
func FileTypeFromExt(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".fit":
		return FileTypeFIT
	case ".tcx":
		return FileTypeTCX
	case ".gpx":
		return FileTypeGPX
	}
	return FileTypeUnknown
}

func DetectFileType(path string) (FileType, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileTypeUnknown, err
	}
	defer file.Close()

	// Read first 512 bytes for detection
	header := make([]byte, 512)
	n, err := io.ReadFull(file, header)
	if err != nil && n == 0 {
		return FileTypeUnknown, err
	}

	return DetectFileTypeFromData(header[:n]), nil
}

func DetectFileTypeFromData(data []byte) FileType {
	// FIT header: size byte, then ".FIT" at offset 8
	if len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT")) {
		return FileTypeFIT
	}

	head := bytes.TrimLeft(data[:min(len(data), 512)], "\xef\xbb\xbf \t\r\n")
	if !bytes.HasPrefix(head, []byte("<")) {
		return FileTypeUnknown
	}
	if bytes.Contains(head, []byte("<gpx")) || bytes.Contains(head, []byte("topografix.com/GPX")) {
		return FileTypeGPX
	}
	if bytes.Contains(head, []byte("TrainingCenterDatabase")) {
		return FileTypeTCX
	}
	return FileTypeUnknown
}
