package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	configx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/pkg/config"
	logx "github.com/tanpawarit/Chative-Phone-Sales-Assistant/pkg/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "salesbot",
	Short: "Phone sales assistant backed by a local LLM and a Postgres catalog",
	Long: `salesbot answers product questions from a Postgres catalog and takes orders,
using a tool-calling agent on an OpenAI-compatible LLM server.

Commands:
  chat      - talk to the assistant in the terminal
  migrate   - create tables, indexes and constraints
  seed      - load products from a YAML file
  products  - print the catalog`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configx.SetEnvFile(envFile)
		logCfg, err := configx.New[logx.Config]("LOG")
		if err != nil {
			return fmt.Errorf("load log config: %w", err)
		}
		logx.Init(*logCfg)
		return nil
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to a .env file (default .env when present)")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(productsCmd)
}
