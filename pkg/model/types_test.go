package model

import (
	"strings"
	"testing"
)

func TestAutosizeConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     AutosizeConfig
		wantErr string
	}{
		{
			name: "valid",
			cfg:  AutosizeConfig{TextArea: "content", MinLines: 40, MinColumns: 100},
		},
		{
			name:    "missing textarea",
			cfg:     AutosizeConfig{MinLines: 1},
			wantErr: "textarea id is required",
		},
		{
			name:    "negative minimum",
			cfg:     AutosizeConfig{TextArea: "content", MinLines: -1},
			wantErr: "minLines",
		},
		{
			name:    "bad id character",
			cfg:     AutosizeConfig{TextArea: "con tent"},
			wantErr: "unsupported character",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("want error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestDraftConfig_Validate(t *testing.T) {
	valid := DraftConfig{
		TextArea:      "content",
		SaveControl:   "save-draft",
		ClearControl:  "clear-draft",
		MessageRegion: "draft-message",
		Name:          "editor_draft",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	missingName := valid
	missingName.Name = ""
	if err := missingName.Validate(); err == nil {
		t.Fatalf("expected missing draft name to fail validation")
	}

	badName := valid
	badName.Name = "draft;name"
	if err := badName.Validate(); err == nil {
		t.Fatalf("expected cookie-unsafe name to fail validation")
	}
}

func TestSubmitConfig_Validate_SelectionListOptional(t *testing.T) {
	cfg := SubmitConfig{Form: "editor-form", ResponseRegion: "response"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("selection list should be optional: %v", err)
	}

	cfg.SelectionList = "bad id"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected invalid selection list id to fail validation")
	}
}

func TestPageWidgets_Validate_PrefixesLocation(t *testing.T) {
	page := PageWidgets{
		Autosize: []AutosizeConfig{{TextArea: "content"}},
		Drafts:   []DraftConfig{{}},
	}
	err := page.Validate()
	if err == nil {
		t.Fatalf("expected invalid draft config to fail")
	}
	if !strings.Contains(err.Error(), "drafts[0]") {
		t.Fatalf("expected location prefix, got %v", err)
	}
}

func TestPageWidgets_Empty(t *testing.T) {
	if !(PageWidgets{}).Empty() {
		t.Fatalf("zero value should be empty")
	}
	page := PageWidgets{Submitters: []SubmitConfig{{Form: "f", ResponseRegion: "r"}}}
	if page.Empty() {
		t.Fatalf("page with submitter should not be empty")
	}
}
