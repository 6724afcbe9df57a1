package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/theme"

	"github.com/Maia-Everett/ghetto-skype/internal/apperr"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#ff0000", want: color.NRGBA{R: 255, A: 255}},
		{in: "#0f0", want: color.NRGBA{G: 255, A: 255}},
		{in: "11223380", want: color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}},
		{in: "#12345", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCompile(t *testing.T) {
	src := []byte(`
colors:
  primary: "#102030"
dark_colors:
  background: "#000000"
sizes:
  text: 20
`)
	th, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if got := th.Color(theme.ColorNamePrimary, theme.VariantLight); got != (color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}) {
		t.Errorf("primary = %v", got)
	}
	if got := th.Color(theme.ColorNameBackground, theme.VariantDark); got != (color.NRGBA{A: 255}) {
		t.Errorf("dark background = %v", got)
	}
	if got := th.Size(theme.SizeNameText); got != 20 {
		t.Errorf("text size = %v, want 20", got)
	}
	if got, want := th.Size(theme.SizeNamePadding), theme.DefaultTheme().Size(theme.SizeNamePadding); got != want {
		t.Errorf("padding = %v, want default %v", got, want)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "colors: [",
		"bad color":     "colors:\n  primary: nope\n",
		"negative size": "sizes:\n  text: -1\n",
	}
	for name, src := range tests {
		if _, err := Compile([]byte(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestScaled(t *testing.T) {
	base := Compact()
	zoomed := Scaled(base, 1.5)

	if got := zoomed.Size(theme.SizeNameText); got != 13*1.5 {
		t.Errorf("scaled text = %v, want %v", got, 13*1.5)
	}
	if base.Zoom() != 1 {
		t.Errorf("Scaled modified its base theme")
	}

	def := Scaled(nil, 2)
	if got, want := def.Size(theme.SizeNameText), theme.DefaultTheme().Size(theme.SizeNameText)*2; got != want {
		t.Errorf("default scaled text = %v, want %v", got, want)
	}

	if got := Scaled(nil, 0).(*Theme).Zoom(); got != 1 {
		t.Errorf("zero zoom normalised to %v, want 1", got)
	}
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "dark"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "dark", SourceFileName), []byte("sizes:\n  text: 11\n"), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir)

	th, err := l.Load("dark")
	if err != nil {
		t.Fatalf("Load(dark): %v", err)
	}
	if got := th.Size(theme.SizeNameText); got != 11 {
		t.Errorf("text size = %v, want 11", got)
	}

	if _, err := l.Load(CompactName); err != nil {
		t.Errorf("built-in compact theme: %v", err)
	}

	for _, name := range []string{"missing", "../dark", "", ".."} {
		_, err := l.Load(name)
		if !apperr.IsKind(err, apperr.KindTheme) {
			t.Errorf("Load(%q) error = %v, want KindTheme", name, err)
		}
	}
}

func TestLoaderNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"dark", "light"} {
		if err := os.MkdirAll(filepath.Join(dir, name), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name, SourceFileName), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	// A directory without a source file is not a theme
	if err := os.MkdirAll(filepath.Join(dir, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	got := NewLoader(dir).Names()
	want := []string{CompactName, "dark", "light"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := NewLoader(filepath.Join(dir, "missing")).Names(); len(got) != 1 {
		t.Errorf("Names() on missing dir = %v", got)
	}
}
