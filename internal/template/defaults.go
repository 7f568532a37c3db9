package template

import "github.com/lzzz0001/photo-homework/internal/watermark"

// SeedDefaults installs a few starter templates, but only into an empty
// collection, so user edits are never clobbered.
func (s *Store) SeedDefaults() error {
	if len(s.templates) > 0 {
		return nil
	}

	copyright := watermark.Default()
	copyright.Text = "© Your Name"
	copyright.FontSize = 24
	copyright.Opacity = 70
	copyright.StrokeWidth = 1

	diagonal := watermark.Default()
	diagonal.Text = "WATERMARK"
	diagonal.Anchor = watermark.AnchorCenter
	diagonal.FontSize = 72
	diagonal.Opacity = 30
	diagonal.Rotation = -45

	subtle := watermark.Default()
	subtle.Text = "Photo by You"
	subtle.FontSize = 16
	subtle.TextColor = watermark.RGB{R: 200, G: 200, B: 200}
	subtle.StrokeWidth = 0
	subtle.MarginX = 10
	subtle.MarginY = 10

	seeds := []struct {
		name, description string
		cfg               watermark.Config
	}{
		{"Simple Copyright", "Simple white copyright text in bottom right", copyright},
		{"Large Diagonal", "Large diagonal watermark across center", diagonal},
		{"Subtle Corner", "Small, subtle watermark in corner", subtle},
	}
	for _, seed := range seeds {
		if err := s.Save(seed.name, seed.description, seed.cfg); err != nil {
			return err
		}
	}
	return nil
}
