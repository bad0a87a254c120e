package bundle

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/nfrund/golfjourneys/internal/domain"
)

// Quote is a golf quote shown on the goals screen.
type Quote struct {
	Text   string `yaml:"text" json:"text"`
	Author string `yaml:"author" json:"author"`
}

// Quotes returns the quotes listed in the manifest's quotes file. A bundle
// without a quotes file has no quotes.
func (b *Bundle) Quotes() ([]Quote, error) {
	file := b.Manifest().Quotes
	if file == "" {
		return nil, nil
	}

	return cached(b, "quotes", func() ([]Quote, error) {
		data, err := b.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var doc struct {
			Quotes []Quote `yaml:"quotes"`
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse quotes: %w", err)
		}
		return doc.Quotes, nil
	})
}

// ImagePath returns the resource path of a named image for an appearance.
// Images without a dark variant use the light one in both appearances.
func (b *Bundle) ImagePath(name string, appearance domain.Appearance) (string, error) {
	img, ok := b.Manifest().Images[name]
	if !ok {
		return "", fmt.Errorf("%w: image %q", ErrNotFound, name)
	}
	if appearance == domain.AppearanceDark && img.Dark != "" {
		return img.Dark, nil
	}
	return img.Light, nil
}

// Image returns the bytes of a named image for an appearance.
func (b *Bundle) Image(name string, appearance domain.Appearance) ([]byte, error) {
	p, err := b.ImagePath(name, appearance)
	if err != nil {
		return nil, err
	}
	return cached(b, "image:"+p, func() ([]byte, error) {
		return b.ReadFile(p)
	})
}
