package formwidgets

import (
	"io/fs"

	"github.com/zphixon/formwidgets/pkg/renderers/inline"
)

// EmbeddedTemplates exposes the built-in inline renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return inline.TemplatesFS()
}
