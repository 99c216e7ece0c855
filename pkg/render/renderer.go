package render

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/zphixon/formwidgets/pkg/model"
)

// Renderer converts a page's widget set into a byte representation, typically
// the inline script block that attaches the behaviors in a browser.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page model.PageWidgets, options RenderOptions) ([]byte, error)
}

// RenderOptions carries per-request rendering instructions.
type RenderOptions struct {
	// Nonce is stamped onto every emitted <script> tag so pages behind a CSP
	// can allow the inline blocks.
	Nonce string
	// IncludeRuntime inlines the cookie codec runtime ahead of the draft
	// scripts. Leave false when the runtime asset is served separately (see
	// RuntimeAssetsFS).
	IncludeRuntime bool
	// Theme carries resolved go-theme partials, tokens, and CSS variables.
	// Renderers fall back to built-in chrome classes when nil.
	Theme *theme.RendererConfig
}
