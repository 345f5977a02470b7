package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Laurian/scp-mcp/internal/output"
	"github.com/Laurian/scp-mcp/internal/store"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump store rows to stdout",
	Long: `Stream item rows from the store, one JSON line per item by default.

Examples:
  scp-mcp dump --limit 5
  scp-mcp dump --limit 5 --offset 100
  scp-mcp dump --format yaml
  scp-mcp dump | jq -r '.scp'
  scp-mcp dump | wc -l`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)

	flags := dumpCmd.Flags()
	flags.Int("limit", 0, "maximum number of rows (0 = all)")
	flags.Int("offset", 0, "number of rows to skip")
	flags.String("format", "jsonl", "output format: json, jsonl, yaml")
	flags.String("db-name", "", "database name (overrides the configured db file)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := initRun()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	formatStr, _ := cmd.Flags().GetString("format")
	dbName, _ := cmd.Flags().GetString("db-name")

	format, err := output.ParseFormat(formatStr)
	if err != nil {
		logError("%v", err)
		return err
	}

	dbPath := cfg.DBPath
	if dbName != "" {
		dbPath = filepath.Join(filepath.Dir(cfg.DBPath), dbName+".db")
	}
	if _, err := os.Stat(dbPath); err != nil {
		logError("database not found: %s (run 'scp-mcp import' first)", dbPath)
		return err
	}

	st, err := store.Open(dbPath, cfg.DBTable)
	if err != nil {
		logError("opening store: %v", err)
		return err
	}
	defer func() { _ = st.Close() }()

	items, err := st.Dump(context.Background(), limit, offset)
	if err != nil {
		logError("dumping table: %v", err)
		return err
	}

	out := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logError("creating output file: %v", err)
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	writer, err := output.NewWriter(out, format)
	if err != nil {
		return err
	}
	for i := range items {
		if err := writer.Write(items[i]); err != nil {
			return err
		}
	}
	return writer.Flush()
}
