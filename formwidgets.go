// Package formwidgets renders the inline script blocks that give plain HTML
// form pages their interactive widgets: one-shot textarea autosizing,
// cookie-backed draft persistence, and asynchronous form submission.
package formwidgets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/zphixon/formwidgets/pkg/manifest"
	"github.com/zphixon/formwidgets/pkg/model"
	"github.com/zphixon/formwidgets/pkg/render"
	"github.com/zphixon/formwidgets/pkg/renderers/inline"
)

const defaultRendererName = "inline"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithManifestFS supplies a filesystem of page manifests so requests can name
// a page instead of carrying widget wiring inline.
func WithManifestFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.manifestFS = fsys
		o.manifestSpecified = true
	}
}

// WithThemeSelector passes a go-theme selector through so theme/variant
// choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks supplies fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// Orchestrator coordinates the pipeline from widget wiring to rendered script
// output. It applies sensible defaults (inline renderer, no manifests) while
// remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	registry          *render.Registry
	defaultRenderer   string
	manifestFS        fs.FS
	manifestSpecified bool
	manifests         *manifest.Store
	themeSelector     theme.ThemeSelector
	themeFallbacks    map[string]string
	initialiseErr     error
	defaultsApplied   bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a page's widget scripts.
type Request struct {
	// Page names a manifest page to render. Optional when Widgets is
	// supplied.
	Page string

	// Widgets carries the wiring inline, bypassing the manifest store.
	Widgets *model.PageWidgets

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as a CSP nonce or
	// runtime inclusion that renderers act on. When omitted, renderers
	// receive the zero-value struct.
	RenderOptions render.RenderOptions

	// ThemeName and ThemeVariant select a theme when a selector is
	// configured. The resolved configuration lands on RenderOptions.Theme.
	ThemeName    string
	ThemeVariant string
}

// Generate resolves the page wiring, applies theme selection, and renders the
// widget scripts with the requested renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("formwidgets: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}

	widgets, err := o.resolveWidgets(req)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil && o.themeSelector != nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, widgets, options)
	if err != nil {
		return nil, fmt.Errorf("formwidgets: render output: %w", err)
	}

	return output, nil
}

// Page returns the manifest wiring for the supplied page id, when manifests
// are configured.
func (o *Orchestrator) Page(id string) (manifest.Page, bool) {
	if o == nil || o.manifests == nil {
		return manifest.Page{}, false
	}
	return o.manifests.Page(id)
}

func (o *Orchestrator) resolveWidgets(req Request) (model.PageWidgets, error) {
	if req.Widgets != nil {
		if req.Widgets.Empty() {
			return model.PageWidgets{}, errors.New("formwidgets: request declares no widgets")
		}
		return *req.Widgets, nil
	}
	if req.Page == "" {
		return model.PageWidgets{}, errors.New("formwidgets: page or widgets are required")
	}
	if o.manifests == nil || o.manifests.Empty() {
		return model.PageWidgets{}, fmt.Errorf("formwidgets: page %q requested but no manifests are configured", req.Page)
	}
	page, ok := o.manifests.Page(req.Page)
	if !ok {
		return model.PageWidgets{}, fmt.Errorf("formwidgets: page %q not found", req.Page)
	}
	return page.Widgets, nil
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("formwidgets: select theme %q: %w", name, err)
	}
	return rendererConfigFromSelection(selection, o.themeFallbacks), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("formwidgets: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("formwidgets: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("formwidgets: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("formwidgets: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
	}
	if !o.registry.Has(defaultRendererName) {
		renderer, err := inline.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("formwidgets: initialise inline renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}

	if o.manifestSpecified && o.manifestFS != nil {
		store, err := manifest.LoadFS(o.manifestFS)
		if err != nil {
			o.initialiseErr = err
		} else {
			o.manifests = store
		}
	}

	o.defaultsApplied = true
}

// GenerateHTML renders a page's widget scripts in one call. It is the
// simplest entry point for callers that just want script output.
func GenerateHTML(ctx context.Context, widgets model.PageWidgets, options ...Option) ([]byte, error) {
	gen := New(options...)
	return gen.Generate(ctx, Request{Widgets: &widgets})
}
