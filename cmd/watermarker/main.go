package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/lzzz0001/photo-homework/internal/batch"
	"github.com/lzzz0001/photo-homework/internal/compositor"
	"github.com/lzzz0001/photo-homework/internal/config"
	"github.com/lzzz0001/photo-homework/internal/fontkit"
	"github.com/lzzz0001/photo-homework/internal/imports"
	"github.com/lzzz0001/photo-homework/internal/renderer"
	"github.com/lzzz0001/photo-homework/internal/storage/local"
	"github.com/lzzz0001/photo-homework/internal/storage/s3"
	"github.com/lzzz0001/photo-homework/internal/template"
	"github.com/lzzz0001/photo-homework/internal/watermark"
)

// storage is the output backend picked from configuration.
type storage interface {
	Save(ctx context.Context, dir, filename string, src io.Reader) (string, error)
	Load(ctx context.Context, path string) (io.ReadCloser, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.MustLoad("./config")

	// Template store: pick up the last-used watermark settings, seeding the
	// starter templates on first run.
	store, err := template.NewStore(cfg.Templates.Dir)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open template store")
	}
	if err := store.SeedDefaults(); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to seed default templates")
	}
	wmCfg, ok := store.LoadLast()
	if !ok {
		wmCfg = watermark.Default()
	}

	// Font resolution: configured directories first, then system locations,
	// with the embedded faces as last resort.
	dirs := append(append([]string{}, cfg.Fonts.Dirs...), fontkit.SystemDirs()...)
	fonts := fontkit.NewResolver(fontkit.NewDirProvider(dirs...))
	fonts.SetCJKFamilies(cfg.Fonts.CJKFamilies)

	rend := renderer.New(fonts)
	rend.SetItalicShear(cfg.Renderer.ItalicShear)
	comp := compositor.New(rend)

	var backend storage = local.NewStorage()
	if cfg.Storage.Endpoint != "" {
		backend, err = s3.NewStorage(ctx, cfg.Storage.Endpoint, cfg.Storage.AccessKey,
			cfg.Storage.SecretKey, cfg.Storage.BucketName, cfg.Storage.UseSSL)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to connect to storage")
		}
	}

	strategy := retry.Strategy{
		Attempts: cfg.Retry.Attempts,
		Delay:    cfg.Retry.Delay,
		Backoff:  cfg.Retry.Backoff,
	}
	exporter := batch.New(backend, comp, strategy)

	// Arguments are input paths: files are imported directly, directories
	// scanned for supported images.
	session := imports.NewSession()
	for _, arg := range os.Args[1:] {
		info, err := os.Stat(arg)
		if err != nil {
			zlog.Logger.Warn().Str("path", arg).Msg("input not found, skipping")
			continue
		}
		if info.IsDir() {
			if _, err := session.AddDir(arg, false); err != nil {
				zlog.Logger.Warn().Err(err).Str("path", arg).Msg("failed to scan directory")
			}
			continue
		}
		if !session.Add(arg) {
			zlog.Logger.Warn().Str("path", arg).Msg("unsupported input, skipping")
		}
	}
	if session.Len() == 0 {
		zlog.Logger.Fatal().Msg("no supported input images given")
	}

	format, err := batch.ParseFormat(cfg.Output.Format)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("invalid output format")
	}
	outputDir := cfg.Output.Dir
	if outputDir == "" {
		outputDir = "output"
	}
	if err := session.ValidateOutputDir(outputDir); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("invalid output directory")
	}
	for _, c := range session.Conflicts(outputDir, cfg.Output.Prefix, cfg.Output.Suffix, format) {
		zlog.Logger.Warn().Str("path", c).Msg("output exists and will be overwritten")
	}

	job := batch.Job{
		Sources:   session.Files(),
		Config:    wmCfg,
		OutputDir: outputDir,
		Format:    format,
		Quality:   cfg.Output.Quality,
		Prefix:    cfg.Output.Prefix,
		Suffix:    cfg.Output.Suffix,
	}
	res := exporter.Run(ctx, job)

	if err := store.SaveLast(wmCfg); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to save last config")
	}

	if res.Succeeded() < res.Attempted {
		zlog.Logger.Warn().
			Int("attempted", res.Attempted).
			Int("succeeded", res.Succeeded()).
			Msg("some inputs were skipped")
		os.Exit(1)
	}
}
