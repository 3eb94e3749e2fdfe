package app

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brokerdesk/brokerdesk/internal/daemon"
	"github.com/brokerdesk/brokerdesk/internal/db/models"
)

// ErrRoleNameUnknown is returned when --role names no role of the tenant.
var ErrRoleNameUnknown = errors.New("no role with this name in the tenant")

var (
	tenantFlag string
	userFlag   string
	roleFlag   string

	rolesCmd = &cobra.Command{
		Use:   "roles",
		Short: "Administer tenant roles from the command line",
	}

	rolesInitCmd = &cobra.Command{
		Use:     "init",
		Short:   "Create the default roles of a tenant",
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.Open(&cfg)
			if err != nil {
				return err
			}
			defer d.Close()

			res, err := d.AuthService().InitializeDefaultRoles(cmd.Context(), tenantFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if res.AlreadyInitialized {
				_, _ = fmt.Fprintln(out, "tenant already has roles, nothing to do")

				return nil
			}

			for _, r := range res.Created {
				_, _ = fmt.Fprintf(out, "created %s\n", r.Name)
			}

			for _, f := range res.Failures {
				_, _ = fmt.Fprintf(out, "failed %s: %s\n", f.Template, f.Error)
			}

			return nil
		},
	}

	rolesListCmd = &cobra.Command{
		Use:     "list",
		Short:   "List the roles of a tenant",
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.Open(&cfg)
			if err != nil {
				return err
			}
			defer d.Close()

			roles, err := d.AuthService().ListRoles(cmd.Context(), tenantFlag)
			if err != nil {
				return err
			}

			return printRoles(cmd.OutOrStdout(), roles)
		},
	}

	rolesAssignCmd = &cobra.Command{
		Use:     "assign",
		Short:   "Assign a role, by name, to a user",
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := daemon.Open(&cfg)
			if err != nil {
				return err
			}
			defer d.Close()

			roles, err := d.AuthService().ListRoles(cmd.Context(), tenantFlag)
			if err != nil {
				return err
			}

			for _, r := range roles {
				if r.Name != roleFlag {
					continue
				}

				a, err := d.AuthService().AssignRole(cmd.Context(), tenantFlag, userFlag, r.ID, nil)
				if err != nil {
					return err
				}

				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "assigned %s to %s (assignment %d)\n", r.Name, a.UserID, a.ID)

				return nil
			}

			return fmt.Errorf("%w: %q", ErrRoleNameUnknown, roleFlag)
		},
	}
)

func init() { //nolint: gochecknoinits
	rolesCmd.PersistentFlags().StringVar(&tenantFlag, "tenant", "", "Tenant id")
	_ = rolesCmd.MarkPersistentFlagRequired("tenant")

	rolesAssignCmd.Flags().StringVar(&userFlag, "user", "", "User id")
	rolesAssignCmd.Flags().StringVar(&roleFlag, "role", "", "Role name")
	_ = rolesAssignCmd.MarkFlagRequired("user")
	_ = rolesAssignCmd.MarkFlagRequired("role")

	rolesCmd.AddCommand(rolesInitCmd, rolesListCmd, rolesAssignCmd)
	rootCmd.AddCommand(rolesCmd)
}

func printRoles(w io.Writer, roles []models.Role) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd

	_, _ = fmt.Fprintln(tw, "ID\tNAME\tSYSTEM\tACTIVE\tSCOPE")

	for _, r := range roles {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%t\t%t\t%s\n", r.ID, r.Name, r.IsSystemRole, r.IsActive, r.DashboardScope)
	}

	return tw.Flush()
}
