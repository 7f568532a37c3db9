// Package template persists watermark configurations as named templates.
// Templates are flat key/value documents (see the watermark codec) stored as
// JSON, so files written by older versions keep loading with defaults for
// any keys they miss.
package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/lzzz0001/photo-homework/internal/watermark"
)

const (
	templatesFile  = "templates.json"
	lastConfigFile = "last_config.json"
	timeLayout     = "2006-01-02 15:04:05"
)

// Template is one stored configuration with its metadata.
type Template struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config"`
	CreatedAt   string         `json:"created_at"`
}

// Store manages the template collection and the auto-saved last config
// under a single directory.
type Store struct {
	dir       string
	templates map[string]Template
}

// NewStore opens (creating if needed) the template directory and loads any
// existing collection. A corrupt collection file is treated as empty rather
// than blocking startup.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create templates dir: %w", err)
	}

	s := &Store{dir: dir, templates: make(map[string]Template)}

	data, err := os.ReadFile(filepath.Join(dir, templatesFile))
	if err == nil {
		var loaded map[string]Template
		if json.Unmarshal(data, &loaded) == nil {
			// Drop entries a hand-edited file left without a config.
			for name, t := range loaded {
				if t.Config == nil {
					delete(loaded, name)
				}
			}
			s.templates = loaded
		}
	}
	return s, nil
}

// Save stores cfg under name, overwriting any existing template with that
// name, and persists the collection.
func (s *Store) Save(name, description string, cfg watermark.Config) error {
	s.templates[name] = Template{
		Name:        name,
		Description: description,
		Config:      cfg.ToMap(),
		CreatedAt:   time.Now().Format(timeLayout),
	}
	return s.flush()
}

// Load returns the config stored under name.
func (s *Store) Load(name string) (watermark.Config, bool) {
	t, ok := s.templates[name]
	if !ok {
		return watermark.Config{}, false
	}
	return watermark.FromMap(t.Config), true
}

// Delete removes a template and persists the collection.
func (s *Store) Delete(name string) error {
	if _, ok := s.templates[name]; !ok {
		return fmt.Errorf("no template named %q", name)
	}
	delete(s.templates, name)
	return s.flush()
}

// Names returns the stored template names, sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.templates))
	for n := range s.templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Info returns a template's metadata.
func (s *Store) Info(name string) (Template, bool) {
	t, ok := s.templates[name]
	return t, ok
}

// SaveLast persists cfg as the last-used configuration for auto-loading on
// the next run.
func (s *Store) SaveLast(cfg watermark.Config) error {
	data, err := json.MarshalIndent(cfg.ToMap(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal last config: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, lastConfigFile), data, 0o644)
}

// LoadLast returns the last-used configuration, if one was saved.
func (s *Store) LoadLast() (watermark.Config, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, lastConfigFile))
	if err != nil {
		return watermark.Config{}, false
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return watermark.Config{}, false
	}
	return watermark.FromMap(m), true
}

// Export writes a single template to path as a standalone JSON document.
func (s *Store) Export(name, path string) error {
	t, ok := s.templates[name]
	if !ok {
		return fmt.Errorf("no template named %q", name)
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Import reads a standalone template document and adds it to the
// collection, renaming it name_1, name_2, ... when the name is taken. It
// returns the name the template was stored under.
func (s *Store) Import(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read template: %w", err)
	}
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	if t.Name == "" || t.Config == nil {
		return "", fmt.Errorf("template %s missing name or config", path)
	}

	name := t.Name
	for i := 1; ; i++ {
		if _, taken := s.templates[name]; !taken {
			break
		}
		name = fmt.Sprintf("%s_%d", t.Name, i)
	}
	t.Name = name
	s.templates[name] = t

	if err := s.flush(); err != nil {
		return "", err
	}
	return name, nil
}

func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.templates, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal templates: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, templatesFile), data, 0o644)
}
