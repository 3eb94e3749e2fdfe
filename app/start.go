package app

import (
	"github.com/spf13/cobra"

	"github.com/brokerdesk/brokerdesk/internal/daemon"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:     "start",
	Short:   "Start the BrokerDesk web service",
	PreRunE: loadConfig,
	RunE: func(_ *cobra.Command, _ []string) error {
		d, err := daemon.New(&cfg)
		if err != nil {
			return err
		}

		return d.Start()
	},
}
