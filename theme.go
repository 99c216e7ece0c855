package formwidgets

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// rendererConfigFromSelection flattens a theme selection into the renderer
// configuration: variant values override the base manifest, fallbacks fill
// partials neither layer provides, and CSS variables are derived from the
// merged tokens.
func rendererConfigFromSelection(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: map[string]string{},
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	for key, partial := range fallbacks {
		if partial != "" {
			cfg.Partials[key] = partial
		}
	}

	manifest := selection.Manifest
	var variant theme.Variant
	var haveVariant bool
	if manifest != nil {
		variant, haveVariant = manifest.Variants[selection.Variant]
	}

	if manifest != nil {
		for key, partial := range manifest.Templates {
			cfg.Partials[key] = partial
		}
		for key, value := range manifest.Tokens {
			cfg.Tokens[key] = value
		}
	}
	if haveVariant {
		for key, partial := range variant.Templates {
			cfg.Partials[key] = partial
		}
		for key, value := range variant.Tokens {
			cfg.Tokens[key] = value
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}

	cfg.AssetURL = assetResolver(manifest, variant, haveVariant)

	return cfg
}

// assetResolver maps logical asset keys to URLs, letting variant files shadow
// the base manifest's and applying the asset prefix.
func assetResolver(manifest *theme.Manifest, variant theme.Variant, haveVariant bool) func(string) string {
	return func(key string) string {
		if manifest == nil {
			return ""
		}

		file := ""
		if haveVariant {
			file = variant.Assets.Files[key]
		}
		if file == "" {
			file = manifest.Assets.Files[key]
		}
		if file == "" {
			return ""
		}

		prefix := manifest.Assets.Prefix
		if haveVariant && variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
		if prefix == "" {
			return file
		}
		return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(file, "/")
	}
}
