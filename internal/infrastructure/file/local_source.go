package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	MediaTypeCSV  = "text/csv"
	MediaTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MediaTypeXLS  = "application/vnd.ms-excel"
)

// LocalSource reads spreadsheets from disk for the command line tools.
type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

func (s *LocalSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.resolve(sourcePath)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return f, nil
}

func (s *LocalSource) ReadAll(ctx context.Context, sourcePath string) ([]byte, error) {
	reader, err := s.Open(ctx, sourcePath)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", sourcePath, err)
	}
	return data, nil
}

func (s *LocalSource) resolve(sourcePath string) string {
	if filepath.IsAbs(sourcePath) {
		return sourcePath
	}
	return filepath.Join(s.BaseDir, sourcePath)
}

// MediaTypeFor guesses the upload media type from the file extension.
func MediaTypeFor(sourcePath string) string {
	switch strings.ToLower(filepath.Ext(sourcePath)) {
	case ".csv":
		return MediaTypeCSV
	case ".xls":
		return MediaTypeXLS
	default:
		return MediaTypeXLSX
	}
}
