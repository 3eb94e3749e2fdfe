package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brokerdesk/brokerdesk/internal/catalog"
	"github.com/brokerdesk/brokerdesk/internal/config"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(catalogCmd, configCmd)
}

var (
	catalogCmd = &cobra.Command{
		Use:   "catalog",
		Short: "Print the modules and actions permissions can be granted on",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, m := range catalog.Modules() {
				actions := catalog.ActionsFor(m)
				names := make([]string, 0, len(actions))

				for _, a := range actions {
					names = append(names, string(a))
				}

				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", m, strings.Join(names, ", ")); err != nil {
					return err
				}
			}

			return nil
		},
	}

	configCmd = &cobra.Command{
		Use:     "config",
		Short:   "Print the effective configuration with secrets masked",
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := config.DumpConfigJSON(&cfg)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}
)
