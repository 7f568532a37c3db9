package batch_test

import (
	"context"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/lzzz0001/photo-homework/internal/batch"
	"github.com/lzzz0001/photo-homework/internal/compositor"
	"github.com/lzzz0001/photo-homework/internal/fontkit"
	"github.com/lzzz0001/photo-homework/internal/renderer"
	"github.com/lzzz0001/photo-homework/internal/storage/local"
	"github.com/lzzz0001/photo-homework/internal/watermark"
)

func TestMain(m *testing.M) {
	zlog.Init()
	os.Exit(m.Run())
}

func newExporter() *batch.Exporter {
	c := compositor.New(renderer.New(fontkit.NewResolver()))
	return batch.New(local.NewStorage(), c, retry.Strategy{Attempts: 1})
}

// savePhoto writes a solid-color PNG source and returns its path.
func savePhoto(t *testing.T, dir, name string, w, h int, c color.NRGBA) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := imaging.Save(imaging.New(w, h, c), path); err != nil {
		t.Fatalf("save photo: %v", err)
	}
	return path
}

func markConfig(t *testing.T, dir string, opacity int) watermark.Config {
	t.Helper()
	mark := savePhoto(t, dir, "mark.png", 10, 10, color.NRGBA{255, 0, 0, 255})
	cfg := watermark.Default()
	cfg.Kind = watermark.KindImage
	cfg.ImagePath = mark
	cfg.Opacity = opacity
	cfg.Anchor = watermark.AnchorCustom
	cfg.CustomX = 0
	cfg.CustomY = 0
	return cfg
}

func TestRunSkipsFailedInputs(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	job := batch.Job{
		Sources: []string{
			savePhoto(t, dir, "a.png", 40, 40, color.NRGBA{0, 0, 255, 255}),
			filepath.Join(dir, "missing.png"),
			savePhoto(t, dir, "b.png", 40, 40, color.NRGBA{0, 255, 0, 255}),
		},
		Config:    markConfig(t, dir, 100),
		OutputDir: out,
		Format:    batch.PNG,
		Suffix:    "_watermarked",
	}

	res := newExporter().Run(context.Background(), job)
	if res.Attempted != 3 {
		t.Errorf("Attempted = %d, want 3", res.Attempted)
	}
	if res.Succeeded() != 2 {
		t.Fatalf("Succeeded() = %d, want 2; written: %v", res.Succeeded(), res.Written)
	}

	want := map[string]bool{
		filepath.Join(out, "a_watermarked.png"): true,
		filepath.Join(out, "b_watermarked.png"): true,
	}
	for _, path := range res.Written {
		if !want[path] {
			t.Errorf("unexpected output path %s", path)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat output: %v", err)
		}
		if info.Size() == 0 {
			t.Errorf("output %s is empty", path)
		}
	}
}

func TestRunSkipsUnsupportedInputs(t *testing.T) {
	dir := t.TempDir()
	text := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(text, []byte("not a photo"), 0o644); err != nil {
		t.Fatal(err)
	}

	job := batch.Job{
		Sources:   []string{text},
		Config:    markConfig(t, dir, 100),
		OutputDir: filepath.Join(dir, "out"),
		Format:    batch.JPEG,
	}
	res := newExporter().Run(context.Background(), job)
	if res.Succeeded() != 0 {
		t.Errorf("unsupported input produced %d outputs", res.Succeeded())
	}
}

func TestJPEGOutputIsFlattened(t *testing.T) {
	dir := t.TempDir()
	src := savePhoto(t, dir, "photo.png", 40, 40, color.NRGBA{0, 0, 255, 255})

	job := batch.Job{
		Sources:   []string{src},
		Config:    markConfig(t, dir, 50),
		OutputDir: filepath.Join(dir, "out"),
		Format:    batch.JPEG,
		Quality:   95,
	}
	res := newExporter().Run(context.Background(), job)
	if res.Succeeded() != 1 {
		t.Fatalf("Succeeded() = %d, want 1", res.Succeeded())
	}
	if ext := filepath.Ext(res.Written[0]); ext != ".jpg" {
		t.Errorf("output extension = %s, want .jpg", ext)
	}

	f, err := os.Open(res.Written[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("output is not a decodable JPEG: %v", err)
	}

	// Half-opacity red over opaque blue: about (128, 0, 127). Allow slack
	// for JPEG's lossy encoding.
	r, g, b, _ := img.At(4, 4).RGBA()
	near := func(got uint32, want int) bool {
		d := int(got>>8) - want
		return d >= -16 && d <= 16
	}
	if !near(r, 128) || !near(g, 0) || !near(b, 127) {
		t.Errorf("blended pixel = (%d,%d,%d), want ~(128,0,127)",
			r>>8, g>>8, b>>8)
	}
}

func TestFlatten(t *testing.T) {
	img := imaging.New(4, 4, color.NRGBA{255, 0, 0, 128})
	flat := batch.Flatten(img)
	got := flat.NRGBAAt(1, 1)
	if got.A != 255 {
		t.Fatalf("flattened alpha = %d, want 255", got.A)
	}
	// Half-transparent red over white is about (255, 127, 127).
	if got.R != 255 || got.G < 125 || got.G > 129 || got.B < 125 || got.B > 129 {
		t.Errorf("flattened pixel = %v, want ~(255,127,127,255)", got)
	}
}

func TestResizeBeforeWatermark(t *testing.T) {
	dir := t.TempDir()
	src := savePhoto(t, dir, "big.png", 100, 40, color.NRGBA{0, 0, 255, 255})

	job := batch.Job{
		Sources:   []string{src},
		Config:    markConfig(t, dir, 100),
		OutputDir: filepath.Join(dir, "out"),
		Format:    batch.PNG,
		Resize:    &batch.ResizeOptions{ScalePercent: 50},
	}
	res := newExporter().Run(context.Background(), job)
	if res.Succeeded() != 1 {
		t.Fatalf("Succeeded() = %d, want 1", res.Succeeded())
	}
	out, err := imaging.Open(res.Written[0])
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds().Dx() != 50 || out.Bounds().Dy() != 20 {
		t.Errorf("resized output is %dx%d, want 50x20",
			out.Bounds().Dx(), out.Bounds().Dy())
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		input, prefix, suffix string
		format                batch.Format
		want                  string
	}{
		{"/photos/cat.jpeg", "", "_watermarked", batch.JPEG, "cat_watermarked.jpg"},
		{"dog.png", "wm_", "", batch.PNG, "wm_dog.png"},
		{"a/b/shot.TIF", "", "", batch.JPEG, "shot.jpg"},
		{"noext", "p_", "_s", batch.PNG, "p_noext_s.png"},
	}
	for _, tt := range tests {
		got := batch.OutputName(tt.input, tt.prefix, tt.suffix, tt.format)
		if got != tt.want {
			t.Errorf("OutputName(%q, %q, %q, %v) = %q, want %q",
				tt.input, tt.prefix, tt.suffix, tt.format, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want batch.Format
		ok   bool
	}{
		{"JPEG", batch.JPEG, true},
		{"jpg", batch.JPEG, true},
		{" png ", batch.PNG, true},
		{"", batch.JPEG, true},
		{"webp", batch.JPEG, false},
	} {
		got, err := batch.ParseFormat(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseFormat(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSupportedInput(t *testing.T) {
	for path, want := range map[string]bool{
		"a.jpg":  true,
		"a.JPEG": true,
		"a.png":  true,
		"a.bmp":  true,
		"a.tiff": true,
		"a.gif":  false,
		"a.txt":  false,
		"a":      false,
	} {
		if got := batch.SupportedInput(path); got != want {
			t.Errorf("SupportedInput(%q) = %v, want %v", path, got, want)
		}
	}
}
