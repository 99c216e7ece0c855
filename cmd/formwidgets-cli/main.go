package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"gopkg.in/yaml.v3"

	formwidgets "github.com/zphixon/formwidgets"
	"github.com/zphixon/formwidgets/pkg/model"
	"github.com/zphixon/formwidgets/pkg/render"
)

func main() {
	manifests := flag.String("manifests", "", "directory of page manifest files")
	page := flag.String("page", "", "manifest page id to render")
	renderer := flag.String("renderer", "inline", "renderer to use")
	output := flag.String("output", "", "output file (stdout if empty)")
	nonce := flag.String("nonce", "", "CSP nonce stamped on emitted script tags")
	runtime := flag.Bool("runtime", true, "inline the cookie runtime ahead of draft scripts")
	initManifest := flag.String("init", "", "interactively scaffold a manifest file at the given path")
	flag.Parse()

	if *initManifest != "" {
		if err := scaffoldManifest(*initManifest); err != nil {
			log.Fatalf("Failed to scaffold manifest: %v", err)
		}
		fmt.Printf("Manifest written to %s\n", *initManifest)
		return
	}

	if *manifests == "" || *page == "" {
		log.Fatalf("both -manifests and -page are required (or use -init)")
	}

	gen := formwidgets.New(formwidgets.WithManifestFS(os.DirFS(*manifests)))

	outputHTML, err := gen.Generate(context.Background(), formwidgets.Request{
		Page:     *page,
		Renderer: *renderer,
		RenderOptions: render.RenderOptions{
			Nonce:          *nonce,
			IncludeRuntime: *runtime,
		},
	})
	if err != nil {
		log.Fatalf("Failed to generate widget scripts: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, outputHTML, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Scripts written to %s\n", *output)
	} else {
		fmt.Println(string(outputHTML))
	}
}

type manifestDocument struct {
	Pages map[string]manifestPage `yaml:"pages"`
}

type manifestPage struct {
	Title             string `yaml:"title,omitempty"`
	model.PageWidgets `yaml:",inline"`
}

func scaffoldManifest(path string) error {
	var pageID string
	if err := survey.AskOne(&survey.Input{
		Message: "Page id:",
		Default: "editor",
	}, &pageID); err != nil {
		return err
	}

	var title string
	if err := survey.AskOne(&survey.Input{
		Message: "Page title (optional):",
	}, &title); err != nil {
		return err
	}

	widgets := model.PageWidgets{}

	var wantAutosize bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Add a textarea autosizer?",
		Default: true,
	}, &wantAutosize); err != nil {
		return err
	}
	if wantAutosize {
		cfg, err := askAutosize()
		if err != nil {
			return err
		}
		widgets.Autosize = append(widgets.Autosize, cfg)
	}

	var wantDraft bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Add a cookie-backed draft widget?",
		Default: true,
	}, &wantDraft); err != nil {
		return err
	}
	if wantDraft {
		cfg, err := askDraft()
		if err != nil {
			return err
		}
		widgets.Drafts = append(widgets.Drafts, cfg)
	}

	var wantSubmit bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Add an async form submitter?",
		Default: true,
	}, &wantSubmit); err != nil {
		return err
	}
	if wantSubmit {
		cfg, err := askSubmit()
		if err != nil {
			return err
		}
		widgets.Submitters = append(widgets.Submitters, cfg)
	}

	if widgets.Empty() {
		return fmt.Errorf("no widgets selected for page %q", pageID)
	}
	if err := widgets.Validate(); err != nil {
		return err
	}

	doc := manifestDocument{
		Pages: map[string]manifestPage{
			pageID: {Title: title, PageWidgets: widgets},
		},
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func askAutosize() (model.AutosizeConfig, error) {
	cfg := model.AutosizeConfig{}
	if err := survey.AskOne(&survey.Input{
		Message: "Textarea element id:",
		Default: "content",
	}, &cfg.TextArea); err != nil {
		return cfg, err
	}

	var err error
	if cfg.MinLines, err = askInt("Minimum visible lines:", 40); err != nil {
		return cfg, err
	}
	if cfg.MinColumns, err = askInt("Minimum visible columns:", 100); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func askDraft() (model.DraftConfig, error) {
	cfg := model.DraftConfig{}
	prompts := []struct {
		message  string
		fallback string
		target   *string
	}{
		{"Textarea element id:", "content", &cfg.TextArea},
		{"Save control element id:", "save-draft", &cfg.SaveControl},
		{"Clear control element id:", "clear-draft", &cfg.ClearControl},
		{"Message region element id:", "draft-message", &cfg.MessageRegion},
		{"Draft cookie name:", "draft_content", &cfg.Name},
	}
	for _, prompt := range prompts {
		if err := survey.AskOne(&survey.Input{
			Message: prompt.message,
			Default: prompt.fallback,
		}, prompt.target); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func askSubmit() (model.SubmitConfig, error) {
	cfg := model.SubmitConfig{}
	if err := survey.AskOne(&survey.Input{
		Message: "Form element id:",
		Default: "edit-form",
	}, &cfg.Form); err != nil {
		return cfg, err
	}
	if err := survey.AskOne(&survey.Input{
		Message: "Response region element id:",
		Default: "response",
	}, &cfg.ResponseRegion); err != nil {
		return cfg, err
	}

	var wantList bool
	if err := survey.AskOne(&survey.Confirm{
		Message: "Remove a select option after successful submits?",
	}, &wantList); err != nil {
		return cfg, err
	}
	if wantList {
		if err := survey.AskOne(&survey.Input{
			Message: "Select element id:",
			Default: "revisions",
		}, &cfg.SelectionList); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func askInt(message string, fallback int) (int, error) {
	var raw string
	if err := survey.AskOne(&survey.Input{
		Message: message,
		Default: strconv.Itoa(fallback),
	}, &raw); err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return value, nil
}
