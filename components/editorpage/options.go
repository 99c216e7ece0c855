package editorpage

// Options configures the canned editor page wiring.
type Options struct {
	// ContentID is the editing textarea's element id.
	ContentID string
	// FormID is the edit form's element id.
	FormID string
	// ResponseID is the region the submit response lands in.
	ResponseID string
	// SaveID, ClearID, and MessageID wire the draft controls.
	SaveID    string
	ClearID   string
	MessageID string
	// DraftCookie names the cookie the draft is stored under.
	DraftCookie string
	// RevisionsID optionally names a revision select whose chosen option is
	// removed after a successful submit. Empty disables the behaviour.
	RevisionsID string
	// MinLines and MinColumns floor the textarea's one-shot autosizing.
	MinLines   int
	MinColumns int
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the wiring of the classic editor page.
func DefaultOptions() Options {
	return Options{
		ContentID:   "content",
		FormID:      "edit-form",
		ResponseID:  "response",
		SaveID:      "save-draft",
		ClearID:     "clear-draft",
		MessageID:   "draft-message",
		DraftCookie: "draft_content",
		MinLines:    40,
		MinColumns:  100,
	}
}

// NewOptions applies overrides on top of the defaults.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	return opts
}

// WithDraftCookie overrides the draft cookie name, letting each edited page
// keep its own draft slot.
func WithDraftCookie(name string) OptionFn {
	return func(o *Options) {
		if name != "" {
			o.DraftCookie = name
		}
	}
}

// WithRevisions enables revision list pruning against the given select id.
func WithRevisions(id string) OptionFn {
	return func(o *Options) {
		o.RevisionsID = id
	}
}

// WithMinimumSize overrides the autosize floor.
func WithMinimumSize(lines, columns int) OptionFn {
	return func(o *Options) {
		o.MinLines = lines
		o.MinColumns = columns
	}
}
