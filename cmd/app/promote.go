package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clubhouse-hq/clubhouse-api/internal/domain"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
)

var errUnknownRole = errors.New("role must be one of user, admin, top_admin")

// NewPromoteCommand sets the role of an existing account. It is the way to
// create the first top_admin, since the API never lets a user change their
// own role.
func NewPromoteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email> <role>",
		Short: "Set the role of a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := strings.ToLower(strings.TrimSpace(args[0]))
			role := domain.Role(args[1])
			if !role.Valid() {
				return errUnknownRole
			}

			_, database, err := bootstrap(opts)
			if err != nil {
				return err
			}

			users := repository.NewUserRepository(dao.NewUserDAO(database))
			user, err := users.FindByEmail(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("users.FindByEmail -> %w", err)
			}

			updated, err := users.UpdateRole(cmd.Context(), user.ID, role)
			if err != nil {
				return fmt.Errorf("users.UpdateRole -> %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", updated.Email, updated.Role)

			return nil
		},
	}
}
