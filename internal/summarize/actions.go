package summarize

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gleanhq/glean/internal/common"
	"github.com/gleanhq/glean/models"
	"github.com/gleanhq/glean/pkg/extract"
	"github.com/gleanhq/glean/pkg/storage"
	"github.com/gleanhq/glean/pkg/summarize"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// summaryOutput is what 'glean summarize' prints. Nothing is persisted.
type summaryOutput struct {
	URL      string         `json:"url" yaml:"url"`
	Title    string         `json:"title" yaml:"title"`
	Language string         `json:"language,omitempty" yaml:"language,omitempty"`
	Summary  models.Summary `json:"summary" yaml:"summary"`
}

// classifyOutput is what 'glean classify' prints. Nothing is persisted.
type classifyOutput struct {
	URL            string                `json:"url" yaml:"url"`
	Title          string                `json:"title" yaml:"title"`
	Language       string                `json:"language,omitempty" yaml:"language,omitempty"`
	Classification models.Classification `json:"classification" yaml:"classification"`
}

// SummarizeAction summarizes one page from a URL or a local HTML file.
func SummarizeAction(c *cli.Context) error {
	content, err := loadContent(c)
	if err != nil {
		return err
	}

	out := summaryOutput{
		URL:      content.URL,
		Title:    content.Title,
		Language: content.Language,
		Summary:  summarize.Summarize(content),
	}
	return printOutput(c, out)
}

// ClassifyAction classifies one page from a URL or a local HTML file.
func ClassifyAction(c *cli.Context) error {
	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return err
	}

	classifier, err := common.NewClassifier(cfg.TaxonomyPath)
	if err != nil {
		return err
	}

	content, err := loadContent(c)
	if err != nil {
		return err
	}

	classification, err := classifier.Classify(content)
	if err != nil {
		return fmt.Errorf("failed to classify page: %w", err)
	}

	out := classifyOutput{
		URL:            content.URL,
		Title:          content.Title,
		Language:       content.Language,
		Classification: classification,
	}
	return printOutput(c, out)
}

// loadContent extracts page content from --url (fetched over HTTP) or
// --file (read from disk), exactly one of which must be set.
func loadContent(c *cli.Context) (models.PageContent, error) {
	pageURL := strings.TrimSpace(c.String("url"))
	filePath := strings.TrimSpace(c.String("file"))

	switch {
	case pageURL != "" && filePath != "":
		return models.PageContent{}, fmt.Errorf("use --url or --file, not both")
	case pageURL == "" && filePath == "":
		return models.PageContent{}, fmt.Errorf("no input provided\nUsage: glean %s --url <url>\n       glean %s --file <path>", c.Command.Name, c.Command.Name)
	}

	extractor := extract.New()

	if filePath != "" {
		files := &storage.Storage{}
		html, err := files.ReadFile(filePath)
		if err != nil {
			return models.PageContent{}, fmt.Errorf("failed to read file: %w", err)
		}
		abs, err := filepath.Abs(filePath)
		if err != nil {
			abs = filePath
		}
		content, err := extractor.FromHTML("file://"+abs, html)
		if err != nil {
			return models.PageContent{}, fmt.Errorf("failed to extract content: %w", err)
		}
		return content, nil
	}

	valid, invalid := common.SanitizeAndValidateURLs([]string{pageURL})
	if len(invalid) > 0 || len(valid) == 0 {
		return models.PageContent{}, fmt.Errorf("invalid URL: %s", pageURL)
	}

	cfg, err := common.ResolveConfig(c)
	if err != nil {
		return models.PageContent{}, err
	}
	pageFetcher, err := common.NewFetcher(c, cfg)
	if err != nil {
		return models.PageContent{}, err
	}

	html, err := pageFetcher.Fetch(c.Context, valid[0])
	if err != nil {
		return models.PageContent{}, fmt.Errorf("failed to fetch page: %w", err)
	}

	content, err := extractor.FromHTML(valid[0], html)
	if err != nil {
		return models.PageContent{}, fmt.Errorf("failed to extract content: %w", err)
	}
	return content, nil
}

func printOutput(c *cli.Context, out any) error {
	format := strings.ToLower(c.String("format"))
	switch format {
	case "", "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Print(string(data))
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("unknown format: %s (use: yaml or json)", format)
	}
	return nil
}
