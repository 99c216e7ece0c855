package model

import (
	"fmt"
	"strings"
)

// AutosizeConfig sizes a textarea to its content once, at setup time.
type AutosizeConfig struct {
	// TextArea is the id of the textarea element to size.
	TextArea string `json:"textarea" yaml:"textarea"`
	// MinLines is the smallest number of visible rows, regardless of content.
	MinLines int `json:"minLines" yaml:"minLines"`
	// MinColumns is the smallest number of visible columns, regardless of
	// content.
	MinColumns int `json:"minColumns" yaml:"minColumns"`
}

// DraftConfig wires a textarea to a named cookie slot with save/clear
// controls and a status message region.
type DraftConfig struct {
	TextArea      string `json:"textarea" yaml:"textarea"`
	SaveControl   string `json:"saveControl" yaml:"saveControl"`
	ClearControl  string `json:"clearControl" yaml:"clearControl"`
	MessageRegion string `json:"messageRegion" yaml:"messageRegion"`
	// Name is the cookie name the draft is stored under.
	Name string `json:"name" yaml:"name"`
	// SaveIcon optionally decorates the save control with inline markup.
	// Renderers sanitize it before use.
	SaveIcon string `json:"saveIcon,omitempty" yaml:"saveIcon,omitempty"`
	// ClearIcon optionally decorates the clear control.
	ClearIcon string `json:"clearIcon,omitempty" yaml:"clearIcon,omitempty"`
}

// SubmitConfig replaces a form's native submission with an asynchronous POST
// whose raw response lands in a display region.
type SubmitConfig struct {
	Form           string `json:"form" yaml:"form"`
	ResponseRegion string `json:"responseRegion" yaml:"responseRegion"`
	// SelectionList optionally names a select element whose currently
	// selected option is removed after a successful submission. Empty leaves
	// every list untouched.
	SelectionList string `json:"selectionList,omitempty" yaml:"selectionList,omitempty"`
}

// PageWidgets collects every widget attached to a single page.
type PageWidgets struct {
	Autosize   []AutosizeConfig `json:"autosize,omitempty" yaml:"autosize,omitempty"`
	Drafts     []DraftConfig    `json:"drafts,omitempty" yaml:"drafts,omitempty"`
	Submitters []SubmitConfig   `json:"submitters,omitempty" yaml:"submitters,omitempty"`
}

// Empty reports whether the page declares no widgets at all.
func (p PageWidgets) Empty() bool {
	return len(p.Autosize) == 0 && len(p.Drafts) == 0 && len(p.Submitters) == 0
}

// Validate checks every widget configuration on the page.
func (p PageWidgets) Validate() error {
	for idx, cfg := range p.Autosize {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("model: autosize[%d]: %w", idx, err)
		}
	}
	for idx, cfg := range p.Drafts {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("model: drafts[%d]: %w", idx, err)
		}
	}
	for idx, cfg := range p.Submitters {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("model: submitters[%d]: %w", idx, err)
		}
	}
	return nil
}

// Validate reports configuration errors before any element lookup happens.
func (c AutosizeConfig) Validate() error {
	if err := validateID("textarea", c.TextArea); err != nil {
		return err
	}
	if c.MinLines < 0 {
		return fmt.Errorf("minLines must not be negative, got %d", c.MinLines)
	}
	if c.MinColumns < 0 {
		return fmt.Errorf("minColumns must not be negative, got %d", c.MinColumns)
	}
	return nil
}

// Validate reports configuration errors before any element lookup happens.
func (c DraftConfig) Validate() error {
	for _, check := range []struct {
		label string
		value string
	}{
		{"textarea", c.TextArea},
		{"saveControl", c.SaveControl},
		{"clearControl", c.ClearControl},
		{"messageRegion", c.MessageRegion},
	} {
		if err := validateID(check.label, check.value); err != nil {
			return err
		}
	}
	return validateCookieName(c.Name)
}

// Validate reports configuration errors before any element lookup happens.
func (c SubmitConfig) Validate() error {
	if err := validateID("form", c.Form); err != nil {
		return err
	}
	if err := validateID("responseRegion", c.ResponseRegion); err != nil {
		return err
	}
	if c.SelectionList != "" {
		return validateID("selectionList", c.SelectionList)
	}
	return nil
}

// validateID accepts the conservative id alphabet the emitted scripts embed
// without escaping concerns.
func validateID(label, id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return fmt.Errorf("%s id is required", label)
	}
	if trimmed != id {
		return fmt.Errorf("%s id %q has surrounding whitespace", label, id)
	}
	for _, r := range id {
		if !isIDRune(r) {
			return fmt.Errorf("%s id %q contains unsupported character %q", label, id, r)
		}
	}
	return nil
}

func validateCookieName(name string) error {
	if name == "" {
		return fmt.Errorf("draft name is required")
	}
	for _, r := range name {
		if !isIDRune(r) {
			return fmt.Errorf("draft name %q contains unsupported character %q", name, r)
		}
	}
	return nil
}

func isIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}
