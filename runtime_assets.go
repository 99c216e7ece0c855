package formwidgets

import (
	"io/fs"

	"github.com/zphixon/formwidgets/pkg/renderers/inline"
)

// RuntimeScriptName is the filename of the cookie codec runtime asset.
const RuntimeScriptName = inline.RuntimeScriptName

// RuntimeAssetsFS exposes the browser runtime assets the draft scripts rely
// on so Go applications can serve them directly.
//
// Typical mount:
//
//	mux.Handle("/runtime/",
//	  http.StripPrefix("/runtime/",
//	    http.FileServerFS(formwidgets.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return inline.AssetsFS()
}

// RuntimeScript returns the cookie codec runtime source for callers that
// inline it rather than serving it as a file.
func RuntimeScript() string {
	return inline.RuntimeScript()
}
