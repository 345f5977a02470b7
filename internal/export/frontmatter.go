package export

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Laurian/scp-mcp/internal/scp"
)

const (
	licenseName = "CC BY-SA 3.0"
	licenseURL  = "https://creativecommons.org/licenses/by-sa/3.0/"

	aiSummaryLicenseNote = "This summary was generated using AI and is based on " +
		"content from the SCP Wiki, which is licensed under CC BY-SA 3.0. " +
		"Derivatives must be shared under the same license."
)

// frontmatter is the YAML metadata block at the top of exported files.
type frontmatter struct {
	SCPID         string   `yaml:"scp_id"`
	Title         string   `yaml:"title"`
	Link          string   `yaml:"link,omitempty"`
	SCPNumber     int      `yaml:"scp_number,omitempty"`
	Series        string   `yaml:"series,omitempty"`
	Rating        int      `yaml:"rating,omitempty"`
	Author        string   `yaml:"author,omitempty"`
	CreatedAt     string   `yaml:"created_at,omitempty"`
	SourceURL     string   `yaml:"source_url,omitempty"`
	Domain        string   `yaml:"domain,omitempty"`
	Tags          []string `yaml:"tags,omitempty"`
	References    []string `yaml:"references,omitempty"`
	Images        []string `yaml:"images,omitempty"`
	DatasetCommit string   `yaml:"dataset_commit,omitempty"`
	ContentSHA1   string   `yaml:"content_sha1,omitempty"`
	License       string   `yaml:"license"`
	LicenseURL    string   `yaml:"license_url"`
	LicenseNote   string   `yaml:"license_note,omitempty"`
	ContentType   string   `yaml:"content_type,omitempty"`
}

func newFrontmatter(it *scp.Item) frontmatter {
	fm := frontmatter{
		SCPID:         it.SCP,
		Title:         it.Title,
		Link:          it.Link,
		SCPNumber:     it.SCPNumber,
		Series:        it.Series,
		Rating:        it.Rating,
		Author:        it.Creator,
		SourceURL:     it.URL,
		Domain:        it.Domain,
		Tags:          it.Tags,
		References:    it.References,
		Images:        it.Images,
		DatasetCommit: it.DatasetCommit,
		ContentSHA1:   it.ContentSHA1,
		License:       licenseName,
		LicenseURL:    licenseURL,
	}
	if it.CreatedAt != nil && !it.CreatedAt.IsZero() {
		fm.CreatedAt = it.CreatedAt.Format(time.RFC3339)
	}
	return fm
}

func (fm frontmatter) render() (string, error) {
	body, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("render frontmatter: %w", err)
	}
	return "---\n" + string(body) + "---\n", nil
}

// StripFrontmatter splits a staged file into its YAML metadata and body.
// Files without a frontmatter block return nil metadata and the input
// unchanged.
func StripFrontmatter(content string) (map[string]any, string) {
	if !strings.HasPrefix(content, "---\n") {
		return nil, content
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, content
	}
	block := rest[:end+1]
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(body, "\n")

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return nil, content
	}
	return meta, strings.TrimPrefix(body, "\n")
}
