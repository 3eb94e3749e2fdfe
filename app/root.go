// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/brokerdesk/brokerdesk/internal/config"
	"github.com/brokerdesk/brokerdesk/internal/logger"
)

var (
	configPath string // Path to the configuration directory
	devMode    bool

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "brokerdesk",
		Short: "BrokerDesk serves tenant roles and permissions for the brokerage CRM",
		Long: `BrokerDesk manages the roles, permission matrices and user role
assignments of every tenant of the brokerage CRM.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "Directory holding main.toml")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Enable dev mode")
}

// loadConfig reads the configuration and initializes the global logger.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	if devMode {
		cfg.DevMode = true
	}

	return logger.Init(cfg.Log)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
