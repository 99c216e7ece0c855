// Package submit replaces a form's native submission with an asynchronous
// POST whose raw response body lands in a display region.
package submit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/zphixon/formwidgets/pkg/dom"
	"github.com/zphixon/formwidgets/pkg/model"
)

// Option customises a Submitter before first use.
type Option func(*Submitter)

// WithHTTPClient replaces the default http.DefaultClient. The submitter adds
// no timeout of its own; callers that want one configure it on the client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Submitter) {
		if client != nil {
			s.client = client
		}
	}
}

// WithBaseURL resolves relative form actions against a base, standing in for
// the page URL the browser would resolve against.
func WithBaseURL(base string) Option {
	return func(s *Submitter) {
		s.baseURL = strings.TrimRight(base, "/")
	}
}

// Submitter posts a form's current field set to its action URL and renders
// the outcome (response body or error text) into the response region.
type Submitter struct {
	cfg    model.SubmitConfig
	form   *dom.Form
	region *dom.Region
	list   *dom.SelectList

	client  *http.Client
	baseURL string
}

// New resolves the configured elements. The selection list is resolved only
// when configured; every other missing element fails construction.
func New(doc *dom.Document, cfg model.SubmitConfig, options ...Option) (*Submitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	form, err := doc.Form(cfg.Form)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	if form.Action() == "" {
		return nil, fmt.Errorf("submit: form %q has no action URL", cfg.Form)
	}
	region, err := doc.Region(cfg.ResponseRegion)
	if err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}

	var list *dom.SelectList
	if cfg.SelectionList != "" {
		list, err = doc.SelectList(cfg.SelectionList)
		if err != nil {
			return nil, fmt.Errorf("submit: %w", err)
		}
	}

	s := &Submitter{
		cfg:    cfg,
		form:   form,
		region: region,
		list:   list,
		client: http.DefaultClient,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Submit form-encodes the current field set and POSTs it to the form's
// action URL. The full response body is written verbatim into the response
// region; any failure is written as the error's string form instead. Both
// branches terminate in the region; Submit never returns an error and never
// distinguishes HTTP error statuses from success (the body is opaque text
// either way). Concurrent calls are not deduplicated.
func (s *Submitter) Submit(ctx context.Context) {
	body := s.form.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.actionURL(), strings.NewReader(body))
	if err != nil {
		s.region.SetText(err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		s.region.SetText(err.Error())
		return
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		s.region.SetText(err.Error())
		return
	}

	s.region.SetText(string(text))
	if s.list != nil {
		// Fire-and-forget UI cleanup; not dependent on response content.
		s.list.RemoveSelected()
	}
}

func (s *Submitter) actionURL() string {
	action := s.form.Action()
	if s.baseURL == "" || strings.Contains(action, "://") {
		return action
	}
	if !strings.HasPrefix(action, "/") {
		action = "/" + action
	}
	return s.baseURL + action
}
