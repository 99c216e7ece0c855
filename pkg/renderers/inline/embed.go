package inline

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// RuntimeScriptName is the cookie codec asset the draft scripts rely on.
const RuntimeScriptName = "formwidgets-cookies.js"

// TemplatesFS exposes the embedded macro templates for consumers that want to
// extend or override the built-in script rendering.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the embedded runtime asset bundle so callers can serve it
// over HTTP or copy it into their own asset pipeline.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		// Should never happen, but fall back to raw FS so assets remain usable.
		return embeddedAssets
	}
	return sub
}

// RuntimeScript returns the cookie codec runtime source.
func RuntimeScript() string {
	data, err := fs.ReadFile(embeddedAssets, "assets/"+RuntimeScriptName)
	if err != nil {
		return ""
	}
	return string(data)
}
