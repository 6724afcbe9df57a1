package theme

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/Maia-Everett/ghetto-skype/internal/apperr"
)

// Theme source layout
const (
	SourceFileName = "settings.yaml"
	CompactName    = "compact"
)

// Source is the on-disk form of a theme
type Source struct {
	Colors     map[string]string  `yaml:"colors"`
	DarkColors map[string]string  `yaml:"dark_colors"`
	Sizes      map[string]float32 `yaml:"sizes"`
}

// Loader reads themes from <dir>/<name>/settings.yaml
type Loader struct {
	dir string
}

// NewLoader creates a loader rooted at dir
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the themes directory
func (l *Loader) Dir() string {
	return l.dir
}

// Names lists the themes available in the themes directory, always
// including the built-in compact theme
func (l *Loader) Names() []string {
	names := []string{CompactName}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return names
	}
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == CompactName {
			continue
		}
		if _, err := os.Stat(filepath.Join(l.dir, entry.Name(), SourceFileName)); err == nil {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Load compiles the named theme. The built-in compact theme is used when no
// file named "compact" exists.
func (l *Loader) Load(name string) (*Theme, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return nil, apperr.New(apperr.KindTheme, "load "+name, errors.New("invalid theme name"))
	}

	path := filepath.Join(l.dir, name, SourceFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && name == CompactName {
			return Compact(), nil
		}
		return nil, apperr.New(apperr.KindTheme, "load "+name, err)
	}

	t, err := Compile(data)
	if err != nil {
		return nil, apperr.New(apperr.KindTheme, "load "+name, errors.Wrap(err, path))
	}
	return t, nil
}

// Compile turns YAML theme source into a Theme on top of the fyne default
func Compile(data []byte) (*Theme, error) {
	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, errors.Wrap(err, "parse theme")
	}

	t := &Theme{
		base:       theme.DefaultTheme(),
		colors:     make(map[fyne.ThemeColorName]color.Color, len(src.Colors)),
		darkColors: make(map[fyne.ThemeColorName]color.Color, len(src.DarkColors)),
		sizes:      make(map[fyne.ThemeSizeName]float32, len(src.Sizes)),
		scale:      1,
	}

	for name, value := range src.Colors {
		c, err := ParseColor(value)
		if err != nil {
			return nil, errors.Wrapf(err, "color %s", name)
		}
		t.colors[fyne.ThemeColorName(name)] = c
	}
	for name, value := range src.DarkColors {
		c, err := ParseColor(value)
		if err != nil {
			return nil, errors.Wrapf(err, "dark color %s", name)
		}
		t.darkColors[fyne.ThemeColorName(name)] = c
	}
	for name, value := range src.Sizes {
		if value < 0 {
			return nil, errors.Errorf("size %s is negative", name)
		}
		t.sizes[fyne.ThemeSizeName(name)] = value
	}
	return t, nil
}

// ParseColor accepts #rgb, #rrggbb and #rrggbbaa
func ParseColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return nil, fmt.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
