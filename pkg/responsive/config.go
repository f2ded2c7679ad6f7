// Package responsive converts a Unity web build into a responsive,
// portrait-first page: it settles the compression state of the payload
// files, validates the build, backs up the entry page and stylesheet, and
// rewrites both from embedded templates.
package responsive

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/provide-io/unity-responsive/pkg/codec"
	rerrors "github.com/provide-io/unity-responsive/pkg/responsive/errors"
)

// Resolution is the canvas size the game renders at.
type Resolution struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// BuildConfig is the product metadata baked into the generated page. It is
// built once at startup and passed by value.
type BuildConfig struct {
	Resolution     Resolution `yaml:"resolution"`
	GameTitle      string     `yaml:"game_title"`
	CompanyName    string     `yaml:"company_name"`
	ProductName    string     `yaml:"product_name"`
	ProductVersion string     `yaml:"product_version"`
	Favicon        string     `yaml:"favicon"`
	Compression    string     `yaml:"compression"`
}

// DefaultBuildConfig returns the configuration for La Gran Travesia Constitucional.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		Resolution:     Resolution{Width: 1080, Height: 2400},
		GameTitle:      "La Gran Travesia Constitucional",
		CompanyName:    "NolimStudios",
		ProductName:    "La_Gran_Travesia_Constitucional",
		ProductVersion: "1.0",
		Favicon:        "TemplateData/travesia_logo.jpg",
		Compression:    codec.Brotli,
	}
}

// LoadBuildConfig overlays the YAML file at path onto the defaults. Keys
// missing from the file keep their default values.
func LoadBuildConfig(path string) (BuildConfig, error) {
	cfg := DefaultBuildConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return BuildConfig{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return BuildConfig{}, fmt.Errorf("%w: %s: %v", rerrors.ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return BuildConfig{}, err
	}
	return cfg, nil
}

// Validate checks the fields the renderer and file probes depend on.
func (c BuildConfig) Validate() error {
	var problems []string

	if c.Resolution.Width <= 0 || c.Resolution.Height <= 0 {
		problems = append(problems, fmt.Sprintf("resolution must be positive, got %dx%d", c.Resolution.Width, c.Resolution.Height))
	}
	if strings.TrimSpace(c.ProductName) == "" {
		problems = append(problems, "product_name is required")
	}
	if strings.ContainsAny(c.ProductName, `/\`) {
		problems = append(problems, "product_name must not contain path separators")
	}
	if _, err := codec.Get(c.Compression); err != nil {
		problems = append(problems, fmt.Sprintf("compression must be one of %s", strings.Join(codec.Names(), ", ")))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", rerrors.ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Codec returns the compression format payload files may be shipped in.
func (c BuildConfig) Codec() (codec.Codec, error) {
	return codec.Get(c.Compression)
}

// AspectRatio returns width over height.
func (c BuildConfig) AspectRatio() float64 {
	return float64(c.Resolution.Width) / float64(c.Resolution.Height)
}
