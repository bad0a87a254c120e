package bundle

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ManifestFile is the name of the manifest at the root of every bundle.
const ManifestFile = "manifest.yaml"

// ErrInvalidManifest is returned when manifest.yaml is missing required data or
// cannot be parsed.
var ErrInvalidManifest = errors.New("invalid bundle manifest")

var manifestValidator = validator.New()

// Manifest describes a bundle: who it belongs to and where its resources live.
type Manifest struct {
	Identifier    string           `yaml:"identifier" json:"identifier" validate:"required"`
	Name          string           `yaml:"name" json:"name" validate:"required"`
	Version       string           `yaml:"version" json:"version" validate:"required"`
	DefaultLocale string           `yaml:"default_locale" json:"defaultLocale" validate:"required,bcp47_language_tag"`
	Locales       []string         `yaml:"locales" json:"locales" validate:"required,min=1,dive,bcp47_language_tag"`
	BrandColor    string           `yaml:"brand_color" json:"brandColor" validate:"omitempty,hexadecimal,len=6"`
	Strings       string           `yaml:"strings" json:"strings"`
	Quotes        string           `yaml:"quotes" json:"quotes"`
	Images        map[string]Image `yaml:"images" json:"images" validate:"dive"`
}

// Image points at the light and optional dark variant of an image resource.
type Image struct {
	Light string `yaml:"light" json:"light" validate:"required"`
	Dark  string `yaml:"dark,omitempty" json:"dark,omitempty"`
}

// ParseManifest decodes and validates manifest.yaml content.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if m.Strings == "" {
		m.Strings = "strings"
	}

	if err := manifestValidator.Struct(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if !slices.Contains(m.Locales, m.DefaultLocale) {
		return nil, fmt.Errorf("%w: default locale %q is not listed in locales", ErrInvalidManifest, m.DefaultLocale)
	}

	return &m, nil
}
