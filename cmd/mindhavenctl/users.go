package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	userstore "github.com/mindhaven/mindhaven/internal/app/store/users"
)

func init() {
	usersCmd := &cobra.Command{Use: "users", Short: "User operations"}

	var limit int64
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List users, newest registrations first",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			summaries, err := userstore.New(gw).ListSummary(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tREGISTERED")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					s.ID.Hex(), s.Name, s.Email, s.RegisteredAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}
	listCmd.Flags().Int64Var(&limit, "limit", 50, "Maximum users to list")
	usersCmd.AddCommand(listCmd)

	showCmd := &cobra.Command{
		Use:   "show USER_ID_OR_EMAIL",
		Short: "Show one user as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			store := userstore.New(gw)
			user, err := store.GetByHexID(cmd.Context(), args[0])
			if err == userstore.ErrNotFound {
				user, err = store.GetByEmail(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(user, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	usersCmd.AddCommand(showCmd)

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete USER_ID",
		Short: "Delete a user and all embedded activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cleanup, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			store := userstore.New(gw)
			user, err := store.GetByHexID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if !yes {
				ok, err := confirm(fmt.Sprintf("Delete %s <%s> and all their data?", user.Name, user.Email))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("cancelled")
					return nil
				}
			}

			if _, err := store.Delete(cmd.Context(), user.ID); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", user.ID.Hex())
			return nil
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	usersCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(usersCmd)
}
