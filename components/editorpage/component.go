// Package editorpage bundles the widget wiring of a content editor page: a
// textarea sized to its initial content, a cookie-backed draft slot, and an
// async edit form whose response lands next to the editor. It is
// extraction-friendly: the component only produces wiring and scripts, the
// page markup stays with the caller.
package editorpage

import (
	"context"

	formwidgets "github.com/zphixon/formwidgets"
	"github.com/zphixon/formwidgets/pkg/model"
	"github.com/zphixon/formwidgets/pkg/render"
)

// Component holds the resolved wiring for one editor page.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return c.opts
}

// Widgets returns the page wiring for use with an orchestrator or manifest.
func (c *Component) Widgets() model.PageWidgets {
	opts := c.Options()

	page := model.PageWidgets{
		Autosize: []model.AutosizeConfig{
			{
				TextArea:   opts.ContentID,
				MinLines:   opts.MinLines,
				MinColumns: opts.MinColumns,
			},
		},
		Drafts: []model.DraftConfig{
			{
				TextArea:      opts.ContentID,
				SaveControl:   opts.SaveID,
				ClearControl:  opts.ClearID,
				MessageRegion: opts.MessageID,
				Name:          opts.DraftCookie,
			},
		},
		Submitters: []model.SubmitConfig{
			{
				Form:           opts.FormID,
				ResponseRegion: opts.ResponseID,
				SelectionList:  opts.RevisionsID,
			},
		},
	}
	return page
}

// Scripts renders the page's widget scripts with the default inline renderer,
// including the cookie runtime.
func (c *Component) Scripts(ctx context.Context, options ...formwidgets.Option) ([]byte, error) {
	widgets := c.Widgets()
	gen := formwidgets.New(options...)
	return gen.Generate(ctx, formwidgets.Request{
		Widgets: &widgets,
		RenderOptions: render.RenderOptions{
			IncludeRuntime: true,
		},
	})
}
