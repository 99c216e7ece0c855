package dom

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TextArea is a handle on a textarea element.
type TextArea struct {
	sel *goquery.Selection
}

// Value returns the textarea's current content.
func (t *TextArea) Value() string {
	return t.sel.Text()
}

// SetValue replaces the textarea's content.
func (t *TextArea) SetValue(value string) {
	t.sel.SetText(value)
}

// SetRows mutates the visible row count.
func (t *TextArea) SetRows(rows int) {
	t.sel.SetAttr("rows", strconv.Itoa(rows))
}

// SetCols mutates the visible column count.
func (t *TextArea) SetCols(cols int) {
	t.sel.SetAttr("cols", strconv.Itoa(cols))
}

// Rows reports the current rows attribute, zero when unset or malformed.
func (t *TextArea) Rows() int {
	return intAttr(t.sel, "rows")
}

// Cols reports the current cols attribute, zero when unset or malformed.
func (t *TextArea) Cols() int {
	return intAttr(t.sel, "cols")
}

// Region is a handle on any element used to display transient text, such as a
// status message or a server response.
type Region struct {
	sel *goquery.Selection
}

// SetText replaces the region's content with plain text. Markup in the input
// is rendered as text, never interpreted.
func (r *Region) SetText(text string) {
	r.sel.SetText(text)
}

// Text returns the region's current text content.
func (r *Region) Text() string {
	return r.sel.Text()
}

// Control is a handle on a clickable element (button, input, link). The
// widgets only need to know it exists; behavior is attached by the emitted
// script or driven programmatically.
type Control struct {
	sel *goquery.Selection
}

// ID returns the control's id attribute.
func (c *Control) ID() string {
	id, _ := c.sel.Attr("id")
	return id
}

// Form is a handle on a form element.
type Form struct {
	sel *goquery.Selection
}

// Action returns the form's configured action URL.
func (f *Form) Action() string {
	action, _ := f.sel.Attr("action")
	return strings.TrimSpace(action)
}

// Values captures the form's current field set the way a browser would encode
// it: named inputs (checked boxes and radios only), textarea content, and the
// selected option of each select.
func (f *Form) Values() url.Values {
	values := url.Values{}

	f.sel.Find("input[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		if name == "" {
			return
		}
		switch inputType(s) {
		case "submit", "button", "reset", "image", "file":
			return
		case "checkbox", "radio":
			if _, checked := s.Attr("checked"); !checked {
				return
			}
			value, ok := s.Attr("value")
			if !ok {
				value = "on"
			}
			values.Add(name, value)
		default:
			value, _ := s.Attr("value")
			values.Add(name, value)
		}
	})

	f.sel.Find("textarea[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		if name == "" {
			return
		}
		values.Add(name, s.Text())
	})

	f.sel.Find("select[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		if name == "" {
			return
		}
		option := selectedOption(s)
		if option == nil {
			return
		}
		values.Add(name, optionValue(option))
	})

	return values
}

// SelectList is a handle on a select element.
type SelectList struct {
	sel *goquery.Selection
}

// RemoveSelected removes the currently selected option and reports whether
// one was removed. Like a browser's selectedIndex, the first option counts as
// selected when none carries the selected attribute.
func (s *SelectList) RemoveSelected() bool {
	option := selectedOption(s.sel)
	if option == nil {
		return false
	}
	option.Remove()
	return true
}

// Len reports how many options the list currently holds.
func (s *SelectList) Len() int {
	return s.sel.Find("option").Length()
}

func selectedOption(sel *goquery.Selection) *goquery.Selection {
	options := sel.Find("option")
	if options.Length() == 0 {
		return nil
	}
	marked := options.Filter("[selected]")
	if marked.Length() > 0 {
		return marked.First()
	}
	return options.First()
}

func optionValue(option *goquery.Selection) string {
	if value, ok := option.Attr("value"); ok {
		return value
	}
	return strings.TrimSpace(option.Text())
}

func inputType(s *goquery.Selection) string {
	typ, _ := s.Attr("type")
	return strings.ToLower(strings.TrimSpace(typ))
}

func intAttr(sel *goquery.Selection, name string) int {
	raw, ok := sel.Attr(name)
	if !ok {
		return 0
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}
