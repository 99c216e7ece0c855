// Package draft persists a textarea's content under a named cookie slot so
// in-progress edits survive navigation, with save/clear controls and a
// transient status message.
package draft

import (
	"fmt"
	"sync"
	"time"

	"github.com/zphixon/formwidgets/pkg/cookies"
	"github.com/zphixon/formwidgets/pkg/dom"
	"github.com/zphixon/formwidgets/pkg/model"
)

// Status messages shown in the widget's message region.
const (
	MsgLoaded = "loaded from draft"
	MsgSaved  = "draft saved"
)

// HideDelay is how long a status message stays visible.
const HideDelay = 4000 * time.Millisecond

// Option customises a Widget before first use.
type Option func(*Widget)

// WithCodec replaces the default cookie codec collaborator.
func WithCodec(codec cookies.Codec) Option {
	return func(w *Widget) {
		if codec != nil {
			w.codec = codec
		}
	}
}

// WithReload sets the callback invoked after a clear, standing in for the
// browser's cache-bypassing page reload.
func WithReload(reload func()) Option {
	return func(w *Widget) {
		if reload != nil {
			w.reload = reload
		}
	}
}

// WithAfterFunc replaces the timer used to hide status messages. Tests use
// this to observe scheduled hides without waiting.
func WithAfterFunc(after func(d time.Duration, f func())) Option {
	return func(w *Widget) {
		if after != nil {
			w.after = after
		}
	}
}

// Widget binds a textarea, its save/clear controls, and a message region to
// one named draft slot in a cookie jar.
type Widget struct {
	cfg   model.DraftConfig
	area  *dom.TextArea
	msg   *dom.Region
	codec cookies.Codec
	jar   cookies.Jar

	reload func()
	after  func(d time.Duration, f func())

	mu sync.Mutex
}

// New resolves every configured element on the document and wires the widget
// to the provided jar. Any missing element fails construction.
func New(doc *dom.Document, cfg model.DraftConfig, jar cookies.Jar, options ...Option) (*Widget, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("draft: %w", err)
	}
	if jar == nil {
		return nil, fmt.Errorf("draft: cookie jar is required")
	}

	area, err := doc.TextArea(cfg.TextArea)
	if err != nil {
		return nil, fmt.Errorf("draft: %w", err)
	}
	msg, err := doc.Region(cfg.MessageRegion)
	if err != nil {
		return nil, fmt.Errorf("draft: %w", err)
	}
	// The controls carry no state; resolving them still surfaces a broken
	// page at setup instead of at click time.
	if _, err := doc.Control(cfg.SaveControl); err != nil {
		return nil, fmt.Errorf("draft: %w", err)
	}
	if _, err := doc.Control(cfg.ClearControl); err != nil {
		return nil, fmt.Errorf("draft: %w", err)
	}

	w := &Widget{
		cfg:    cfg,
		area:   area,
		msg:    msg,
		codec:  cookies.HeaderCodec{},
		jar:    jar,
		reload: func() {},
		after: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(w)
	}
	return w, nil
}

// Init restores a previously saved draft. When the slot holds a non-empty
// value the textarea content is overwritten and "loaded from draft" is shown;
// otherwise nothing happens.
func (w *Widget) Init() {
	stored, ok := w.codec.Parse(w.jar.Header())[w.cfg.Name]
	if !ok || stored == "" {
		return
	}
	w.mu.Lock()
	w.area.SetValue(stored)
	w.mu.Unlock()
	w.show(MsgLoaded)
}

// Save stores the textarea's current content under the draft name and shows
// "draft saved".
func (w *Widget) Save() {
	w.mu.Lock()
	value := w.area.Value()
	w.mu.Unlock()
	w.jar.SetCookie(w.codec.Serialize(w.cfg.Name, value))
	w.show(MsgSaved)
}

// Clear overwrites the slot with an empty value and triggers the reload
// callback so the page reflects the cleared state.
func (w *Widget) Clear() {
	w.jar.SetCookie(w.codec.Serialize(w.cfg.Name, ""))
	w.reload()
}

// Message returns the status region's current text.
func (w *Widget) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.msg.Text()
}

// show displays a status message and schedules its hide. Earlier timers are
// not cancelled, so a stale timer may hide a newer message early.
func (w *Widget) show(text string) {
	w.mu.Lock()
	w.msg.SetText(text)
	w.mu.Unlock()

	w.after(HideDelay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.msg.SetText("")
	})
}
