package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Laurian/scp-mcp/internal/dataset"
	"github.com/Laurian/scp-mcp/internal/logger"
	"github.com/Laurian/scp-mcp/internal/scp"
	"github.com/Laurian/scp-mcp/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import [item-or-range]",
	Short: "Import items into the local store",
	Long: `Load the selected items from the raw dataset, merge in staged
markdown and AI summaries, and replace the store table with the result.

Examples:
  scp-mcp import                   # import all items
  scp-mcp import SCP-173           # single item
  scp-mcp import 100-200           # numeric range
  scp-mcp import --db-name test    # write to a separate database file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	flags := importCmd.Flags()
	flags.IntP("random", "r", 0, "import N random items")
	flags.Int64P("seed", "s", 0, "random seed for deterministic sampling")
	flags.String("db-name", "", "database name (overrides the configured db file)")
	flags.Bool("dry-run", false, "show what would be imported without writing")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := initRun()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	random, _ := cmd.Flags().GetInt("random")
	seed, _ := cmd.Flags().GetInt64("seed")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	dbName, _ := cmd.Flags().GetString("db-name")

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

	markdownDir := filepath.Join(cfg.StagingPath, "markdown")
	summaryDir := filepath.Join(cfg.StagingPath, "summary")
	records := make([]scp.Item, 0, len(items))
	staged := 0
	for _, it := range items {
		if body := readStaged(markdownDir, it); body != "" {
			it.Markdown = body
			staged++
		}
		if body := readStaged(summaryDir, it); body != "" {
			it.Summary = body
		}
		if it.Domain == "" {
			it.Domain = scp.DefaultDomain
		}
		records = append(records, *it)
	}
	logger.Debug("staging content merged", "items", len(records), "with_markdown", staged)

	dbPath := cfg.DBPath
	if dbName != "" {
		dbPath = filepath.Join(filepath.Dir(cfg.DBPath), dbName+".db")
	}

	if dryRun {
		logInfo("Dry run: would import %d items into %s (table %s)", len(records), dbPath, cfg.DBTable)
		return nil
	}

	st, err := store.Open(dbPath, cfg.DBTable)
	if err != nil {
		logError("opening store: %v", err)
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.Replace(ctx, records); err != nil {
		logError("importing items: %v", err)
		return err
	}

	count, err := st.Count(ctx)
	if err != nil {
		return err
	}
	logInfo("Imported %d items into %s (table %s, %d rows)",
		len(records), dbPath, cfg.DBTable, count)
	if commit := loader.Commit(); commit != "" {
		logInfo("Dataset commit: %s", strings.TrimSpace(commit))
	}
	return nil
}
