package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heronet/sellnet/internal/core/ports"
)

// NewCreateAdminCommand bootstraps an administrator. Registering admins over
// HTTP needs an admin token, so the first one is created here.
func NewCreateAdminCommand() *cobra.Command {
	var in ports.RegisterInput

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Name == "" || in.Email == "" || in.Password == "" {
				return errors.New("--name, --email and --password are required")
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.accountService().RegisterAdmin(cmd.Context(), in)
			if err != nil {
				return err
			}

			a.log.Info().Str("supplier_id", res.ID).Msg("administrator created")
			fmt.Fprintf(cmd.OutOrStdout(), "created administrator %s (%s)\n", res.Name, res.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "administrator name")
	cmd.Flags().StringVar(&in.Email, "email", "", "administrator email")
	cmd.Flags().StringVar(&in.Password, "password", "", "administrator password")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "administrator phone")

	return cmd
}
