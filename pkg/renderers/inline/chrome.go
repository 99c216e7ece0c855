package inline

import theme "github.com/goliatone/go-theme"

// Chrome classes stamped onto the message and response regions so pages can
// style widget output without knowing element ids.
const (
	DefaultMessageClass  = "formwidgets-message"
	DefaultResponseClass = "formwidgets-response"
)

// Theme token keys that override the built-in chrome classes.
const (
	themeTokenMessageClass  = "chrome.message"
	themeTokenResponseClass = "chrome.response"
)

func messageClass(cfg *theme.RendererConfig) string {
	if cfg != nil && cfg.Tokens[themeTokenMessageClass] != "" {
		return cfg.Tokens[themeTokenMessageClass]
	}
	return DefaultMessageClass
}

func responseClass(cfg *theme.RendererConfig) string {
	if cfg != nil && cfg.Tokens[themeTokenResponseClass] != "" {
		return cfg.Tokens[themeTokenResponseClass]
	}
	return DefaultResponseClass
}

// templateFor resolves a widget template path, honouring theme partial
// overrides keyed as "widgets.<kind>".
func templateFor(cfg *theme.RendererConfig, kind string) string {
	if cfg != nil {
		if partial := cfg.Partials["widgets."+kind]; partial != "" {
			return partial
		}
	}
	return "templates/" + kind + ".tmpl"
}
