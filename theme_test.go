package formwidgets

import (
	"context"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/zphixon/formwidgets/pkg/render"
)

func TestGeneratePassesThemeConfigToRenderer(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand": "#123456",
		},
		Templates: map[string]string{
			"widgets.autosize": "themes/acme/autosize.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files: map[string]string{
				"stylesheet": "theme.css",
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"brand": "#654321",
				},
				Templates: map[string]string{
					"widgets.draft": "themes/acme/dark/draft.tmpl",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"vendor": "vendor.dark.js",
					},
				},
			},
		},
	}

	selection := &theme.Selection{
		Theme:    "acme",
		Variant:  "dark",
		Manifest: manifest,
	}
	selector := &stubThemeSelector{selection: selection}

	registry := render.NewRegistry()
	renderer := &captureRenderer{name: "capture"}
	registry.MustRegister(renderer)

	gen := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
		WithThemeFallbacks(map[string]string{
			"widgets.submit": "templates/submit.tmpl",
		}),
	)

	widgets := editorWidgets()
	if _, err := gen.Generate(context.Background(), Request{
		Widgets:      &widgets,
		ThemeName:    "acme",
		ThemeVariant: "dark",
	}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(selector.calls) != 1 {
		t.Fatalf("selector called %d times, want 1", len(selector.calls))
	}
	if selector.calls[0].name != "acme" || selector.calls[0].variant != "dark" {
		t.Fatalf("unexpected selector args: %+v", selector.calls[0])
	}

	cfg := renderer.options.Theme
	if cfg == nil {
		t.Fatalf("theme config not passed to renderer")
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("theme identity mismatch: %s/%s", cfg.Theme, cfg.Variant)
	}
	if got := cfg.Partials["widgets.autosize"]; got != "themes/acme/autosize.tmpl" {
		t.Errorf("base partial = %q, want manifest override", got)
	}
	if got := cfg.Partials["widgets.draft"]; got != "themes/acme/dark/draft.tmpl" {
		t.Errorf("variant partial = %q, want variant override", got)
	}
	if got := cfg.Partials["widgets.submit"]; got != "templates/submit.tmpl" {
		t.Errorf("fallback partial = %q, want fallback value", got)
	}
	if got := cfg.Tokens["brand"]; got != "#654321" {
		t.Errorf("token = %q, want variant override", got)
	}
	if got := cfg.CSSVars["--brand"]; got != "#654321" {
		t.Errorf("css var = %q, want derived from merged tokens", got)
	}
	if cfg.AssetURL == nil {
		t.Fatalf("AssetURL resolver missing")
	}
	if got := cfg.AssetURL("vendor"); got != "/assets/themes/acme/vendor.dark.js" {
		t.Errorf("AssetURL(vendor) = %q", got)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.css" {
		t.Errorf("AssetURL(stylesheet) = %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Errorf("AssetURL(missing) = %q, want empty", got)
	}
}

func TestGenerateSkipsSelectorWhenThemePreset(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{Theme: "acme"}}

	registry := render.NewRegistry()
	renderer := &captureRenderer{name: "capture"}
	registry.MustRegister(renderer)

	gen := New(
		WithRegistry(registry),
		WithDefaultRenderer(renderer.Name()),
		WithThemeSelector(selector),
	)

	preset := &theme.RendererConfig{Theme: "preset"}
	widgets := editorWidgets()
	if _, err := gen.Generate(context.Background(), Request{
		Widgets:       &widgets,
		RenderOptions: render.RenderOptions{Theme: preset},
	}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(selector.calls) != 0 {
		t.Errorf("selector called %d times despite preset theme config", len(selector.calls))
	}
	if renderer.options.Theme != preset {
		t.Errorf("renderer received a different theme config than the preset")
	}
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
