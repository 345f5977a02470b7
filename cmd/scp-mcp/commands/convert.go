package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Laurian/scp-mcp/internal/convert"
	"github.com/Laurian/scp-mcp/internal/dataset"
	"github.com/Laurian/scp-mcp/internal/export"
	"github.com/Laurian/scp-mcp/internal/logger"
)

var convertCmd = &cobra.Command{
	Use:   "convert [item-or-range]",
	Short: "Export items to staged markdown files",
	Long: `Convert raw item HTML to markdown and write one file per item under
{staging}/markdown/, sharded one directory level per identifier character
(SCP-173 -> 1/7/3/scp-173.md).

Examples:
  scp-mcp convert                  # all items
  scp-mcp convert SCP-173          # single item
  scp-mcp convert 173              # single item (short form)
  scp-mcp convert 100-200          # numeric range
  scp-mcp convert --random 10      # 10 random items
  scp-mcp convert --random 5 --seed 42   # deterministic sample`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	flags := convertCmd.Flags()
	flags.IntP("random", "r", 0, "export N random items")
	flags.Int64P("seed", "s", 0, "random seed for deterministic sampling")
	flags.StringP("output", "o", "", "output directory (default {staging}/markdown)")
	flags.Bool("dry-run", false, "show what would be exported without writing files")
	flags.Bool("force", false, "overwrite existing files")
	flags.Bool("json", false, "also export item records to {staging}/json")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := initRun()
	if err != nil {
		return err
	}

	random, _ := cmd.Flags().GetInt("random")
	seed, _ := cmd.Flags().GetInt64("seed")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	force, _ := cmd.Flags().GetBool("force")
	withJSON, _ := cmd.Flags().GetBool("json")

	loader := dataset.New(cfg.DataPath)
	ids, err := loader.IDs()
	if err != nil {
		logError("loading dataset index: %v", err)
		return err
	}
	sel := selectionFromArgs(args, random, seed, cmd.Flags().Changed("seed"))
	targets, err := sel.resolve(ids)
	if err != nil {
		logError("%v", err)
		return err
	}

	outDir, _ := cmd.Flags().GetString("output")
	if outDir == "" {
		outDir = filepath.Join(cfg.StagingPath, "markdown")
	}

	md := &export.MarkdownExporter{
		OutDir:  outDir,
		Convert: convert.HTMLToMarkdown,
		DryRun:  dryRun,
		Force:   force,
	}
	var js *export.JSONExporter
	if withJSON {
		js = &export.JSONExporter{
			OutDir: filepath.Join(cfg.StagingPath, "json"),
			DryRun: dryRun,
			Force:  force,
		}
	}

	logInfo("Exporting %d items to %s", len(targets), outDir)

	var report export.Report
	for _, id := range targets {
		item, err := loader.Load(id)
		if err != nil {
			logger.Warn("could not load item", "id", id, "error", err)
			continue
		}
		if _, err := md.Export(item, &report); err != nil {
			logger.Warn("export failed", "id", id, "error", err)
		}
		if js != nil {
			if _, err := js.Export(item, &report); err != nil {
				logger.Warn("json export failed", "id", id, "error", err)
			}
		}
	}

	printReport(&report, dryRun)
	return nil
}

func printReport(r *export.Report, dryRun bool) {
	verb := "Exported"
	if dryRun {
		verb = "Would export"
	}
	logInfo("%s: %d, skipped: %d, errors: %d", verb, r.Exported, r.Skipped, r.Failed)
	for _, msg := range r.Errors {
		logger.Debug("export error", "detail", msg)
	}
}
