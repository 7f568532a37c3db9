// Package batch applies one watermark configuration across many photos.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/lzzz0001/photo-homework/internal/watermark"
)

const defaultJPEGQuality = 95

// fileStorage defines the interface for reading sources and writing outputs.
// It allows targeting a backend other than the local filesystem (e.g. an
// S3-compatible store).
type fileStorage interface {
	Save(ctx context.Context, dir, filename string, src io.Reader) (string, error)
	Load(ctx context.Context, path string) (io.ReadCloser, error)
}

// applier composites the configured watermark onto a photo.
type applier interface {
	Apply(photo image.Image, cfg watermark.Config) *image.NRGBA
}

// Job is one export run: many sources, one shared config. It is constructed
// per export action, consumed synchronously by Run, and discarded.
//
// Overwrite checking is the caller's responsibility; the exporter always
// overwrites existing outputs.
type Job struct {
	ID        uuid.UUID
	Sources   []string
	Config    watermark.Config
	OutputDir string
	Format    Format
	Quality   int // opaque formats only; <= 0 means the default
	Prefix    string
	Suffix    string
	Resize    *ResizeOptions
}

// Result reports what a batch run produced. Inputs that failed are counted
// in Attempted but absent from Written.
type Result struct {
	Attempted int
	Written   []string
}

// Succeeded returns the number of outputs actually written.
func (r Result) Succeeded() int {
	return len(r.Written)
}

// Exporter runs batch jobs. Inputs are processed strictly sequentially; no
// state is shared between iterations.
type Exporter struct {
	storage    fileStorage
	compositor applier
	strategy   retry.Strategy
}

// New creates an Exporter. The retry strategy covers saving only: a save that
// still fails after retries marks that one input as failed, never the batch.
func New(storage fileStorage, c applier, strategy retry.Strategy) *Exporter {
	if strategy.Attempts <= 0 {
		strategy.Attempts = 1
	}
	return &Exporter{storage: storage, compositor: c, strategy: strategy}
}

// Run processes every source in the job. Any failure on one input is logged
// and that input skipped; the batch always runs to completion.
func (e *Exporter) Run(ctx context.Context, job Job) Result {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}

	var res Result
	for _, src := range job.Sources {
		res.Attempted++
		out, err := e.exportOne(ctx, job, src)
		if err != nil {
			zlog.Logger.Warn().
				Err(err).
				Str("job", job.ID.String()).
				Str("input", src).
				Msg("skipping input")
			continue
		}
		res.Written = append(res.Written, out)
	}

	zlog.Logger.Info().
		Str("job", job.ID.String()).
		Int("attempted", res.Attempted).
		Int("succeeded", res.Succeeded()).
		Msg("batch export finished")
	return res
}

func (e *Exporter) exportOne(ctx context.Context, job Job, src string) (string, error) {
	if !SupportedInput(src) {
		return "", fmt.Errorf("unsupported input format: %s", src)
	}

	rc, err := e.storage.Load(ctx, src)
	if err != nil {
		return "", fmt.Errorf("load source: %w", err)
	}
	defer rc.Close()

	img, err := imaging.Decode(rc)
	if err != nil {
		return "", fmt.Errorf("decode source: %w", err)
	}

	if job.Resize != nil {
		img = resize(img, *job.Resize)
	}

	marked := e.compositor.Apply(img, job.Config)

	buf := new(bytes.Buffer)
	if job.Format.Opaque() {
		quality := job.Quality
		if quality <= 0 {
			quality = defaultJPEGQuality
		}
		err = imaging.Encode(buf, Flatten(marked), imaging.JPEG, imaging.JPEGQuality(quality))
	} else {
		err = imaging.Encode(buf, marked, imaging.PNG)
	}
	if err != nil {
		return "", fmt.Errorf("encode output: %w", err)
	}

	name := OutputName(src, job.Prefix, job.Suffix, job.Format)

	var out string
	err = retry.Do(func() error {
		var saveErr error
		out, saveErr = e.storage.Save(ctx, job.OutputDir, name, bytes.NewReader(buf.Bytes()))
		return saveErr
	}, e.strategy)
	if err != nil {
		return "", fmt.Errorf("save output: %w", err)
	}
	return out, nil
}

// Flatten composites img over an opaque white background, for encoders that
// cannot represent transparency.
func Flatten(img image.Image) *image.NRGBA {
	bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
	return imaging.Overlay(bg, img, image.Point{}, 1.0)
}
