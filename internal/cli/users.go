package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *app) newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and register users",
	}
	cmd.AddCommand(
		a.newUsersListCmd(),
		a.newUsersRegisterCmd(),
	)
	return cmd
}

func (a *app) newUsersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return userMessage(err)
			}
			list, err := a.users.List(cmd.Context())
			if err != nil {
				return userMessage(err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tROLE")
			for _, user := range list {
				role := "user"
				if user.IsAdmin {
					role = "admin"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", user.ID, user.Email, role)
			}
			return w.Flush()
		},
	}
}

func (a *app) newUsersRegisterCmd() *cobra.Command {
	var (
		password string
		isAdmin  bool
	)

	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Register a new user (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return userMessage(err)
			}
			if password == "" {
				pw, err := promptPassword("Password for new user: ")
				if err != nil {
					return err
				}
				password = pw
			}
			user, err := a.manager.RegisterUser(cmd.Context(), args[0], password, isAdmin)
			if err != nil {
				return userMessage(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted without echo when omitted)")
	cmd.Flags().BoolVar(&isAdmin, "admin", false, "grant admin rights")
	return cmd
}
