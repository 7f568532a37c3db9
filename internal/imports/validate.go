package imports

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/lzzz0001/photo-homework/internal/batch"
)

// FileInfo is the probe result for one imported photo, used by callers to
// display lists of pending inputs.
type FileInfo struct {
	Path     string
	Filename string
	Width    int
	Height   int
	Format   string
	ByteSize int64
}

// Info probes a file's dimensions and format without decoding its pixels.
func (s *Session) Info(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return FileInfo{}, fmt.Errorf("decode config: %w", err)
	}

	return FileInfo{
		Path:     path,
		Filename: filepath.Base(path),
		Width:    cfg.Width,
		Height:   cfg.Height,
		Format:   format,
		ByteSize: st.Size(),
	}, nil
}

// ValidateOutputDir checks that dir is usable for export: it exists or can
// be created, is writable, and (when overwrite prevention is on) is not the
// directory of any imported source.
func (s *Session) ValidateOutputDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("output directory not specified")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %s is not a directory", dir)
	}

	if s.PreventOverwrite {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve output directory: %w", err)
		}
		for _, f := range s.files {
			src, err := filepath.Abs(filepath.Dir(f))
			if err != nil {
				continue
			}
			if src == abs {
				return fmt.Errorf("output directory equals the directory of %s; exporting would overwrite sources", filepath.Base(f))
			}
		}
	}
	return nil
}

// Conflicts returns the output paths under dir that already exist for the
// session's files with the given naming rules. The exporter itself always
// overwrites, so callers run this check before starting a batch.
func (s *Session) Conflicts(dir, prefix, suffix string, f batch.Format) []string {
	var conflicts []string
	for _, src := range s.files {
		out := filepath.Join(dir, batch.OutputName(src, prefix, suffix, f))
		if _, err := os.Stat(out); err == nil {
			conflicts = append(conflicts, out)
		}
	}
	return conflicts
}
