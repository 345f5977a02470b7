// Package summary generates short AI summaries of converted articles.
//
// Providers wrap the vendor SDKs behind a single Summarize call. A failed
// summary is an error the caller logs and skips; it never aborts a batch.
package summary

import (
	"context"
	"fmt"
	"strings"
)

// Config selects and parameterizes a provider.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int64
	Temperature float64
}

// Provider produces a summary for one article.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, itemID, title, content string) (string, error)
}

// New builds the provider named in cfg. The default is OpenAI, matching the
// original export tooling.
func New(cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return newOpenAI(cfg), nil
	case "anthropic":
		return newAnthropic(cfg), nil
	default:
		return nil, fmt.Errorf("unknown summary provider %q", cfg.Provider)
	}
}

// Names lists the supported provider names.
func Names() []string {
	return []string{"openai", "anthropic"}
}
