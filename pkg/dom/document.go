// Package dom exposes the handful of element handles the widgets operate on.
// Handles are resolved once, at setup time; a missing element is a hard error
// rather than a silently inert widget.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document wraps a parsed HTML page and hands out typed element handles.
type Document struct {
	doc *goquery.Document
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse document: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(html string) (*Document, error) {
	return Parse(strings.NewReader(html))
}

// Html serialises the document back to markup, reflecting any mutations the
// widgets applied.
func (d *Document) Html() (string, error) {
	if d == nil || d.doc == nil {
		return "", fmt.Errorf("dom: document is nil")
	}
	html, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("dom: serialise document: %w", err)
	}
	return html, nil
}

func (d *Document) find(id, want string) (*goquery.Selection, error) {
	if d == nil || d.doc == nil {
		return nil, fmt.Errorf("dom: document is nil")
	}
	sel := d.doc.Find(fmt.Sprintf("[id=%q]", id))
	if sel.Length() == 0 {
		return nil, fmt.Errorf("dom: no element with id %q", id)
	}
	sel = sel.First()
	if want != "" && !sel.Is(want) {
		return nil, fmt.Errorf("dom: element %q is not a %s", id, want)
	}
	return sel, nil
}

// TextArea resolves a textarea element by id.
func (d *Document) TextArea(id string) (*TextArea, error) {
	sel, err := d.find(id, "textarea")
	if err != nil {
		return nil, err
	}
	return &TextArea{sel: sel}, nil
}

// Region resolves any element used as a text display region by id.
func (d *Document) Region(id string) (*Region, error) {
	sel, err := d.find(id, "")
	if err != nil {
		return nil, err
	}
	return &Region{sel: sel}, nil
}

// Form resolves a form element by id.
func (d *Document) Form(id string) (*Form, error) {
	sel, err := d.find(id, "form")
	if err != nil {
		return nil, err
	}
	return &Form{sel: sel}, nil
}

// SelectList resolves a select element by id.
func (d *Document) SelectList(id string) (*SelectList, error) {
	sel, err := d.find(id, "select")
	if err != nil {
		return nil, err
	}
	return &SelectList{sel: sel}, nil
}

// Control resolves a clickable control (button, input, or link) by id.
func (d *Document) Control(id string) (*Control, error) {
	sel, err := d.find(id, "")
	if err != nil {
		return nil, err
	}
	return &Control{sel: sel}, nil
}
