package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Laurian/scp-mcp/internal/dataset"
	"github.com/Laurian/scp-mcp/internal/export"
	"github.com/Laurian/scp-mcp/internal/logger"
	"github.com/Laurian/scp-mcp/internal/summary"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize [item-or-range]",
	Short: "Generate AI summaries into the staging area",
	Long: `Summarize item content with an AI provider and stage the results
under {staging}/summary/, one markdown file per item.

Requires an API key for the selected provider (OPENAI_API_KEY or
ANTHROPIC_API_KEY).

Examples:
  scp-mcp summarize SCP-173
  scp-mcp summarize --random 10 --seed 42
  scp-mcp summarize 100-200 --provider anthropic --max-concurrent 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	flags := summarizeCmd.Flags()
	flags.IntP("random", "r", 0, "summarize N random items")
	flags.Int64P("seed", "s", 0, "random seed for deterministic sampling")
	flags.StringP("provider", "p", "", "summary provider: openai, anthropic")
	flags.StringP("model", "m", "", "model name (provider-specific)")
	flags.StringP("api-key", "k", "", "API key (or use env var)")
	flags.IntP("max-concurrent", "c", 0, "max concurrent summary requests")
	flags.Bool("force", false, "regenerate existing summaries")
	flags.Bool("dry-run", false, "generate but do not write files")

	_ = viper.BindPFlag("provider", flags.Lookup("provider"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("api_key", flags.Lookup("api-key"))
	_ = viper.BindPFlag("max_concurrent", flags.Lookup("max-concurrent"))
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := initRun()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	provider, err := summary.New(summary.Config{
		Provider:    cfg.Provider,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		MaxTokens:   int64(cfg.MaxTokens),
		Temperature: cfg.Temperature,
	})
	if err != nil {
		logError("%v", err)
		return err
	}
	logger.Debug("summary provider ready", "provider", provider.Name())

	random, _ := cmd.Flags().GetInt("random")
	seed, _ := cmd.Flags().GetInt64("seed")
	force, _ := cmd.Flags().GetBool("force")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	loader := dataset.New(cfg.DataPath)
	ids, err := loader.IDs()
	if err != nil {
		logError("loading dataset index: %v", err)
		return err
	}
	targets, err := selectionFromArgs(args, random, seed, cmd.Flags().Changed("seed")).resolve(ids)
	if err != nil {
		logError("%v", err)
		return err
	}

	items := loadItems(loader, targets)
	if len(items) == 0 {
		logError("no items could be loaded")
		return nil
	}

	// Prefer already-staged markdown over raw content for the prompt.
	stagedDir := filepath.Join(cfg.StagingPath, "markdown")
	for _, it := range items {
		if it.Markdown != "" {
			continue
		}
		if staged := readStaged(stagedDir, it); staged != "" {
			it.Markdown = staged
		}
	}

	exporter := &export.SummaryExporter{
		OutDir:        filepath.Join(cfg.StagingPath, "summary"),
		Provider:      provider,
		MaxConcurrent: cfg.MaxConcurrent,
		Force:         force,
		DryRun:        dryRun,
	}

	logInfo("Summarizing %d items with %s", len(items), provider.Name())

	var report export.Report
	if err := exporter.ExportAll(ctx, items, &report); err != nil {
		logError("summarize interrupted: %v", err)
	}
	printReport(&report, dryRun)
	return nil
}
