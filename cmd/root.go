package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command for the scopeboard application
var rootCmd = &cobra.Command{
	Use:   "scopeboard",
	Short: "Manage collection scope for synced data sources",
	Long: `scopeboard controls which channels, conversations, and folders of your
connected data sources (Discord, Slack, Google Drive, notes) are collected
for search. Scope changes are persisted through the sync gateway.

It can run as:
  - A standalone CLI tool for inspecting collection scope (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

// cfgFile is the config file path from --config.
var cfgFile string

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "scopeboard version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scopeboard.yaml)")
	rootCmd.PersistentFlags().String("gateway-url", "http://localhost:8080", "base URL of the scope sync gateway. Can also use SCOPEBOARD_GATEWAY_URL env var.")
	rootCmd.PersistentFlags().String("gateway-token", "", "bearer token for gateway requests. Can also use SCOPEBOARD_GATEWAY_TOKEN env var.")

	_ = viper.BindPFlag("gateway.url", rootCmd.PersistentFlags().Lookup("gateway-url"))
	_ = viper.BindPFlag("gateway.token", rootCmd.PersistentFlags().Lookup("gateway-token"))

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSourcesCmd())
	rootCmd.AddCommand(newTreeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// initConfig reads the config file and SCOPEBOARD_* environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".scopeboard")
	}

	viper.SetEnvPrefix("SCOPEBOARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// A missing config file is fine; flags and env vars cover everything.
	_ = viper.ReadInConfig()
}
