// Package inline renders the inline script blocks that attach the form-page
// widgets (textarea autosize, cookie-backed drafts, asynchronous submission)
// to a page in the browser.
package inline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/zphixon/formwidgets/pkg/model"
	"github.com/zphixon/formwidgets/pkg/render"
	rendertemplate "github.com/zphixon/formwidgets/pkg/render/template"
	gotemplate "github.com/zphixon/formwidgets/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer emits one script block per configured widget.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the inline renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("inline renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "inline"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits the page's script blocks in declaration order: the cookie
// runtime (when requested and needed), autosizers, drafts, then submitters.
func (r *Renderer) Render(ctx context.Context, page model.PageWidgets, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("inline renderer: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, errors.New("inline renderer: template renderer is nil")
	}
	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("inline renderer: %w", err)
	}

	var out bytes.Buffer

	if options.IncludeRuntime && len(page.Drafts) > 0 {
		if err := r.renderInto(&out, templateFor(options.Theme, "runtime"), map[string]any{
			"nonce":   options.Nonce,
			"runtime": RuntimeScript(),
		}); err != nil {
			return nil, err
		}
	}

	for _, cfg := range page.Autosize {
		if err := r.renderInto(&out, templateFor(options.Theme, "autosize"), map[string]any{
			"nonce":       options.Nonce,
			"textarea":    cfg.TextArea,
			"min_lines":   cfg.MinLines,
			"min_columns": cfg.MinColumns,
		}); err != nil {
			return nil, err
		}
	}

	for _, cfg := range page.Drafts {
		data := map[string]any{
			"nonce":          options.Nonce,
			"textarea":       cfg.TextArea,
			"save_control":   cfg.SaveControl,
			"clear_control":  cfg.ClearControl,
			"message_region": cfg.MessageRegion,
			"message_class":  messageClass(options.Theme),
			"name":           cfg.Name,
		}
		if icon, err := iconLiteral(cfg.SaveIcon); err != nil {
			return nil, fmt.Errorf("inline renderer: save icon: %w", err)
		} else if icon != "" {
			data["save_icon"] = icon
		}
		if icon, err := iconLiteral(cfg.ClearIcon); err != nil {
			return nil, fmt.Errorf("inline renderer: clear icon: %w", err)
		} else if icon != "" {
			data["clear_icon"] = icon
		}
		if err := r.renderInto(&out, templateFor(options.Theme, "draft"), data); err != nil {
			return nil, err
		}
	}

	for _, cfg := range page.Submitters {
		data := map[string]any{
			"nonce":           options.Nonce,
			"form":            cfg.Form,
			"response_region": cfg.ResponseRegion,
			"response_class":  responseClass(options.Theme),
		}
		if cfg.SelectionList != "" {
			data["selection_list"] = cfg.SelectionList
		}
		if err := r.renderInto(&out, templateFor(options.Theme, "submit"), data); err != nil {
			return nil, err
		}
	}

	return out.Bytes(), nil
}

func (r *Renderer) renderInto(out *bytes.Buffer, template string, data map[string]any) error {
	rendered, err := r.templates.RenderTemplate(template, data)
	if err != nil {
		return fmt.Errorf("inline renderer: render template %q: %w", template, err)
	}
	out.WriteString(rendered)
	return nil
}

// iconLiteral sanitizes icon markup and encodes it as a JavaScript string
// literal, or returns empty when nothing survives sanitization.
func iconLiteral(raw string) (string, error) {
	cleaned := sanitizeIconMarkup(raw)
	if cleaned == "" {
		return "", nil
	}
	literal, err := json.Marshal(cleaned)
	if err != nil {
		return "", err
	}
	return string(literal), nil
}
