// Package commands implements the CLI commands for scp-mcp.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Laurian/scp-mcp/internal/config"
	"github.com/Laurian/scp-mcp/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "scp-mcp",
	Short: "Model Context Protocol server for SCP Foundation data",
	Long: `scp-mcp converts the SCP wiki dataset into AI-friendly markdown,
stages summaries, imports everything into a local item store, and serves
it over the Model Context Protocol.

Examples:
  # Convert a single item to staged markdown
  scp-mcp convert SCP-173

  # Convert a numeric range, then import into the store
  scp-mcp convert 100-200
  scp-mcp import 100-200

  # Generate AI summaries for ten random items
  scp-mcp summarize --random 10 --seed 42

  # Serve over stdio for an MCP client
  scp-mcp serve`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.scp-mcp.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")
	rootCmd.PersistentFlags().String("data-path", "", "raw dataset directory")
	rootCmd.PersistentFlags().String("staging-path", "", "staging directory for exports")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("data_path", rootCmd.PersistentFlags().Lookup("data-path"))
	_ = viper.BindPFlag("staging_path", rootCmd.PersistentFlags().Lookup("staging-path"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".scp-mcp")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SCP_MCP")
	viper.AutomaticEnv()

	// Also check common API key env vars
	_ = viper.BindEnv("api_key", "OPENAI_API_KEY", "ANTHROPIC_API_KEY")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// initRun loads the validated config and sets up logging; every RunE calls
// it first.
func initRun() (*config.Config, error) {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})
	return config.Load()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
