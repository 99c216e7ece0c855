// Package manifest loads page widget declarations from JSON or YAML files so
// applications can keep widget wiring next to their templates instead of in
// code.
package manifest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zphixon/formwidgets/pkg/model"
)

// Page is one page's widget wiring as declared in a manifest file.
type Page struct {
	// ID identifies the page within the manifest set.
	ID string
	// Title is an optional human readable label.
	Title string
	// Source is the manifest file the page came from.
	Source string
	// Widgets is the validated widget wiring for the page.
	Widgets model.PageWidgets
}

// Store holds every page loaded from a manifest filesystem.
type Store struct {
	pages map[string]Page
}

// LoadFS walks the provided filesystem and parses JSON/YAML manifest files.
// When fsys is nil or no manifest files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{pages: make(map[string]Page)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		if !isManifestFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("manifest: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for pageID, raw := range doc.Pages {
			id := strings.TrimSpace(pageID)
			if id == "" {
				return fmt.Errorf("manifest: file %s defines an empty page id", path)
			}
			if existing, exists := store.pages[id]; exists {
				return fmt.Errorf("manifest: duplicate page %q (files %s and %s)", id, existing.Source, path)
			}

			page := Page{
				ID:      id,
				Title:   strings.TrimSpace(raw.Title),
				Source:  path,
				Widgets: raw.PageWidgets,
			}
			if page.Widgets.Empty() {
				return fmt.Errorf("manifest: page %q (file %s) declares no widgets", id, path)
			}
			if err := page.Widgets.Validate(); err != nil {
				return fmt.Errorf("manifest: page %q (file %s): %w", id, path, err)
			}
			if err := checkRoleCollisions(page.Widgets); err != nil {
				return fmt.Errorf("manifest: page %q (file %s): %w", id, path, err)
			}

			store.pages[id] = page
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Page returns the wiring for the supplied page id.
func (s *Store) Page(id string) (Page, bool) {
	if s == nil {
		return Page{}, false
	}
	page, ok := s.pages[id]
	return page, ok
}

// Pages returns every loaded page sorted by id.
func (s *Store) Pages() []Page {
	if s == nil {
		return nil
	}
	out := make([]Page, 0, len(s.pages))
	for _, page := range s.pages {
		out = append(out, page)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Empty reports whether the store holds any pages.
func (s *Store) Empty() bool {
	return s == nil || len(s.pages) == 0
}

type documentFile struct {
	Pages map[string]pageFile `json:"pages" yaml:"pages"`
}

type pageFile struct {
	Title             string `json:"title" yaml:"title"`
	model.PageWidgets `yaml:",inline"`
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("manifest: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("manifest: parse %s: invalid JSON or YAML", source)
}

// checkRoleCollisions rejects pages where two widgets of the same kind claim
// one element or cookie slot. Sharing across kinds stays legal: an autosizer
// and a draft widget commonly bind the same textarea.
func checkRoleCollisions(widgets model.PageWidgets) error {
	seen := make(map[string]bool)
	claim := func(role, value string) error {
		if value == "" {
			return nil
		}
		key := role + "\x00" + value
		if seen[key] {
			return fmt.Errorf("duplicate %s %q", role, value)
		}
		seen[key] = true
		return nil
	}

	for _, cfg := range widgets.Autosize {
		if err := claim("autosize textarea", cfg.TextArea); err != nil {
			return err
		}
	}
	for _, cfg := range widgets.Drafts {
		for _, role := range []struct {
			label string
			value string
		}{
			{"draft textarea", cfg.TextArea},
			{"draft save control", cfg.SaveControl},
			{"draft clear control", cfg.ClearControl},
			{"draft message region", cfg.MessageRegion},
			{"draft cookie name", cfg.Name},
		} {
			if err := claim(role.label, role.value); err != nil {
				return err
			}
		}
	}
	for _, cfg := range widgets.Submitters {
		if err := claim("submit form", cfg.Form); err != nil {
			return err
		}
		if err := claim("submit response region", cfg.ResponseRegion); err != nil {
			return err
		}
	}
	return nil
}

func isManifestFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
