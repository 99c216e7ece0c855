package submit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zphixon/formwidgets/pkg/dom"
	"github.com/zphixon/formwidgets/pkg/model"
)

const submitPage = `<!DOCTYPE html>
<html><body>
  <form id="editor-form" action="/edit/posts/hello">
    <textarea name="content">updated body</textarea>
    <input type="hidden" name="note" value="typo">
  </form>
  <pre id="response"></pre>
  <select id="revisions">
    <option>abc123 first</option>
    <option selected>def456 second</option>
  </select>
</body></html>`

func newSubmitter(t *testing.T, cfg model.SubmitConfig, base string) (*Submitter, *dom.Document) {
	t.Helper()
	doc, err := dom.ParseString(submitPage)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	s, err := New(doc, cfg, WithBaseURL(base))
	if err != nil {
		t.Fatalf("new submitter: %v", err)
	}
	return s, doc
}

func TestSubmit_RendersResponseVerbatim(t *testing.T) {
	var gotBody string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("want POST, got %s", r.Method)
		}
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotBody = r.PostForm.Get("content")
		w.Write([]byte("wrote to posts/hello.md\n\n[main 1a2b3c] typo - edit posts/hello.md"))
	}))
	defer server.Close()

	s, doc := newSubmitter(t, model.SubmitConfig{
		Form:           "editor-form",
		ResponseRegion: "response",
	}, server.URL)

	s.Submit(context.Background())

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("content type: got %q", gotContentType)
	}
	if gotBody != "updated body" {
		t.Fatalf("posted content: got %q", gotBody)
	}

	region, _ := doc.Region("response")
	want := "wrote to posts/hello.md\n\n[main 1a2b3c] typo - edit posts/hello.md"
	if got := region.Text(); got != want {
		t.Fatalf("response region:\nwant %q\ngot  %q", want, got)
	}
}

func TestSubmit_ErrorStatusBodyStillRendered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("failed: git commit\nstderr:\nnothing to commit"))
	}))
	defer server.Close()

	s, doc := newSubmitter(t, model.SubmitConfig{
		Form:           "editor-form",
		ResponseRegion: "response",
	}, server.URL)

	s.Submit(context.Background())

	region, _ := doc.Region("response")
	if got := region.Text(); !strings.Contains(got, "nothing to commit") {
		t.Fatalf("5xx body should render like any other, got %q", got)
	}
}

func TestSubmit_TransportFailureRendersErrorText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	s, doc := newSubmitter(t, model.SubmitConfig{
		Form:           "editor-form",
		ResponseRegion: "response",
	}, server.URL)

	s.Submit(context.Background())

	region, _ := doc.Region("response")
	if got := region.Text(); got == "" {
		t.Fatalf("transport failure must render error text")
	} else if !strings.Contains(got, "connection refused") && !strings.Contains(got, "refused") {
		t.Logf("error text rendered: %q", got)
	}
}

func TestSubmit_RemovesSelectedOptionOnSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	s, doc := newSubmitter(t, model.SubmitConfig{
		Form:           "editor-form",
		ResponseRegion: "response",
		SelectionList:  "revisions",
	}, server.URL)

	s.Submit(context.Background())

	list, _ := doc.SelectList("revisions")
	if got := list.Len(); got != 1 {
		t.Fatalf("exactly one option should be removed, %d remain", got)
	}
	html, _ := doc.Html()
	if strings.Contains(html, "def456") {
		t.Fatalf("the selected option should be the one removed:\n%s", html)
	}
}

func TestSubmit_ListUntouchedWhenNotConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	s, doc := newSubmitter(t, model.SubmitConfig{
		Form:           "editor-form",
		ResponseRegion: "response",
	}, server.URL)

	s.Submit(context.Background())

	list, _ := doc.SelectList("revisions")
	if got := list.Len(); got != 2 {
		t.Fatalf("unconfigured list must stay untouched, got %d options", got)
	}
}

func TestSubmit_ListUntouchedOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	s, doc := newSubmitter(t, model.SubmitConfig{
		Form:           "editor-form",
		ResponseRegion: "response",
		SelectionList:  "revisions",
	}, server.URL)

	s.Submit(context.Background())

	list, _ := doc.SelectList("revisions")
	if got := list.Len(); got != 2 {
		t.Fatalf("failed submission must not prune the list, got %d options", got)
	}
}

func TestNew_RequiresActionURL(t *testing.T) {
	doc, err := dom.ParseString(`<form id="f"></form><div id="r"></div>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := New(doc, model.SubmitConfig{Form: "f", ResponseRegion: "r"}); err == nil {
		t.Fatalf("form without action must fail construction")
	}
}
