package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Theme overrides colours and sizes of a base theme and scales every size by
// a zoom factor
type Theme struct {
	base       fyne.Theme
	colors     map[fyne.ThemeColorName]color.Color
	darkColors map[fyne.ThemeColorName]color.Color
	sizes      map[fyne.ThemeSizeName]float32
	scale      float32
}

// Scaled wraps base so that every size is multiplied by zoom. A nil base
// means the fyne default theme.
func Scaled(base fyne.Theme, zoom float64) fyne.Theme {
	if t, ok := base.(*Theme); ok {
		copied := *t
		copied.scale = normalizeZoom(zoom)
		return &copied
	}
	if base == nil {
		base = theme.DefaultTheme()
	}
	return &Theme{base: base, scale: normalizeZoom(zoom)}
}

// Compact returns the built-in compact theme: tighter padding and smaller
// text than the fyne default
func Compact() *Theme {
	return &Theme{
		base: theme.DefaultTheme(),
		colors: map[fyne.ThemeColorName]color.Color{
			theme.ColorNameSuccess:    color.RGBA{R: 46, G: 160, B: 67, A: 255},
			theme.ColorNameError:      color.RGBA{R: 183, G: 28, B: 28, A: 255},
			theme.ColorNameWarning:    color.RGBA{R: 255, G: 193, B: 7, A: 255},
			theme.ColorNamePrimary:    color.RGBA{R: 25, G: 118, B: 210, A: 255},
			theme.ColorNameBackground: color.RGBA{R: 250, G: 250, B: 250, A: 255},
			theme.ColorNameForeground: color.RGBA{R: 33, G: 33, B: 33, A: 255},
		},
		darkColors: map[fyne.ThemeColorName]color.Color{
			theme.ColorNameBackground: color.RGBA{R: 18, G: 18, B: 18, A: 255},
			theme.ColorNameForeground: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		},
		sizes: map[fyne.ThemeSizeName]float32{
			theme.SizeNamePadding:         3,
			theme.SizeNameInnerPadding:    6,
			theme.SizeNameLineSpacing:     2,
			theme.SizeNameScrollBar:       12,
			theme.SizeNameText:            13,
			theme.SizeNameHeadingText:     16,
			theme.SizeNameSubHeadingText:  13,
			theme.SizeNameCaptionText:     10,
			theme.SizeNameInputRadius:     3,
			theme.SizeNameSelectionRadius: 2,
		},
		scale: 1,
	}
}

// Zoom returns the scale applied to sizes
func (t *Theme) Zoom() float32 {
	return t.scale
}

// Color returns theme colors
func (t *Theme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if variant == theme.VariantDark {
		if c, ok := t.darkColors[name]; ok {
			return c
		}
	}
	if c, ok := t.colors[name]; ok {
		return c
	}
	return t.base.Color(name, variant)
}

// Font returns theme fonts
func (t *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon returns theme icons
func (t *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns theme sizes multiplied by the zoom factor
func (t *Theme) Size(name fyne.ThemeSizeName) float32 {
	if s, ok := t.sizes[name]; ok {
		return s * t.scale
	}
	return t.base.Size(name) * t.scale
}

func normalizeZoom(zoom float64) float32 {
	if zoom <= 0 {
		return 1
	}
	return float32(zoom)
}
