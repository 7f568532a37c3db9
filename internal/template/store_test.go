package template_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lzzz0001/photo-homework/internal/template"
	"github.com/lzzz0001/photo-homework/internal/watermark"
)

func newStore(t *testing.T, dir string) *template.Store {
	t.Helper()
	s, err := template.NewStore(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func sampleConfig() watermark.Config {
	cfg := watermark.Default()
	cfg.Text = "© Tester"
	cfg.FontSize = 48
	cfg.Opacity = 35
	cfg.Rotation = 15
	cfg.Anchor = watermark.AnchorTopLeft
	return cfg
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newStore(t, t.TempDir())
	cfg := sampleConfig()

	if err := s.Save("mine", "test template", cfg); err != nil {
		t.Fatal(err)
	}
	got, ok := s.Load("mine")
	if !ok {
		t.Fatal("saved template not found")
	}
	if got != cfg {
		t.Errorf("loaded config = %+v, want %+v", got, cfg)
	}

	if _, ok := s.Load("absent"); ok {
		t.Error("loading an unknown name should report false")
	}
}

func TestPersistenceAcrossStores(t *testing.T) {
	dir := t.TempDir()
	first := newStore(t, dir)
	if err := first.Save("kept", "survives reopen", sampleConfig()); err != nil {
		t.Fatal(err)
	}

	second := newStore(t, dir)
	got, ok := second.Load("kept")
	if !ok {
		t.Fatal("template lost across store reopen")
	}
	if got != sampleConfig() {
		t.Errorf("reloaded config = %+v, want %+v", got, sampleConfig())
	}

	info, ok := second.Info("kept")
	if !ok || info.Description != "survives reopen" || info.CreatedAt == "" {
		t.Errorf("metadata not preserved: %+v", info)
	}
}

func TestCorruptCollectionTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "templates.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newStore(t, dir)
	if len(s.Names()) != 0 {
		t.Errorf("corrupt collection yielded templates: %v", s.Names())
	}
}

func TestConfiglessEntriesArePruned(t *testing.T) {
	dir := t.TempDir()
	doc := `{"broken":{"name":"broken","description":"no config"},"ok":{"name":"ok","config":{}}}`
	if err := os.WriteFile(filepath.Join(dir, "templates.json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newStore(t, dir)
	if _, ok := s.Load("broken"); ok {
		t.Error("entry without a config survived loading")
	}
	if _, ok := s.Load("ok"); !ok {
		t.Error("valid entry was pruned")
	}
}

func TestDelete(t *testing.T) {
	s := newStore(t, t.TempDir())
	if err := s.Save("gone", "", sampleConfig()); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("gone"); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Load("gone"); ok {
		t.Error("deleted template still loads")
	}
	if err := s.Delete("gone"); err == nil {
		t.Error("deleting an unknown name should fail")
	}
}

func TestNamesSorted(t *testing.T) {
	s := newStore(t, t.TempDir())
	for _, n := range []string{"zeta", "alpha", "mid"} {
		if err := s.Save(n, "", sampleConfig()); err != nil {
			t.Fatal(err)
		}
	}
	got := s.Names()
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}
}

func TestLastConfig(t *testing.T) {
	dir := t.TempDir()
	s := newStore(t, dir)

	if _, ok := s.LoadLast(); ok {
		t.Error("LoadLast on a fresh store should report false")
	}

	cfg := sampleConfig()
	if err := s.SaveLast(cfg); err != nil {
		t.Fatal(err)
	}

	reopened := newStore(t, dir)
	got, ok := reopened.LoadLast()
	if !ok {
		t.Fatal("last config lost across reopen")
	}
	if got != cfg {
		t.Errorf("last config = %+v, want %+v", got, cfg)
	}
}

func TestExportImport(t *testing.T) {
	src := newStore(t, t.TempDir())
	cfg := sampleConfig()
	if err := src.Save("shared", "exported template", cfg); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "shared.json")
	if err := src.Export("shared", path); err != nil {
		t.Fatal(err)
	}
	if err := src.Export("absent", path); err == nil {
		t.Error("exporting an unknown name should fail")
	}

	dst := newStore(t, t.TempDir())
	name, err := dst.Import(path)
	if err != nil {
		t.Fatal(err)
	}
	if name != "shared" {
		t.Errorf("imported under %q, want shared", name)
	}
	got, ok := dst.Load("shared")
	if !ok || got != cfg {
		t.Errorf("imported config = %+v, want %+v", got, cfg)
	}
}

func TestImportRenamesOnConflict(t *testing.T) {
	src := newStore(t, t.TempDir())
	if err := src.Save("dup", "", sampleConfig()); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "dup.json")
	if err := src.Export("dup", path); err != nil {
		t.Fatal(err)
	}

	dst := newStore(t, t.TempDir())
	if err := dst.Save("dup", "", watermark.Default()); err != nil {
		t.Fatal(err)
	}

	first, err := dst.Import(path)
	if err != nil {
		t.Fatal(err)
	}
	if first != "dup_1" {
		t.Errorf("first conflicting import stored as %q, want dup_1", first)
	}
	second, err := dst.Import(path)
	if err != nil {
		t.Fatal(err)
	}
	if second != "dup_2" {
		t.Errorf("second conflicting import stored as %q, want dup_2", second)
	}
}

func TestImportRejectsBadDocuments(t *testing.T) {
	dir := t.TempDir()
	s := newStore(t, t.TempDir())

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"description":"no name"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Import(bad); err == nil {
		t.Error("importing a document without name/config should fail")
	}
	if _, err := s.Import(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("importing a missing file should fail")
	}
}

func TestSeedDefaults(t *testing.T) {
	s := newStore(t, t.TempDir())
	if err := s.SeedDefaults(); err != nil {
		t.Fatal(err)
	}
	names := s.Names()
	if len(names) != 3 {
		t.Fatalf("seeded %d templates, want 3: %v", len(names), names)
	}
	diag, ok := s.Load("Large Diagonal")
	if !ok {
		t.Fatal("Large Diagonal seed missing")
	}
	if diag.Anchor != watermark.AnchorCenter || diag.Rotation != -45 {
		t.Errorf("Large Diagonal seed = %+v", diag)
	}

	// Seeding must not disturb a non-empty collection.
	if err := s.Delete("Subtle Corner"); err != nil {
		t.Fatal(err)
	}
	if err := s.SeedDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(s.Names()) != 2 {
		t.Errorf("SeedDefaults re-seeded a non-empty collection: %v", s.Names())
	}
}
