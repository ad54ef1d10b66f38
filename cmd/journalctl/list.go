package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listPageSize int

func init() {
	listCmd.PersistentFlags().IntVar(&listPageSize, "page-size", 100, "Rows fetched per query")
	listCmd.AddCommand(listUsersCmd)
	listCmd.AddCommand(listOrgsCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts or organizations",
}

var listUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List every account",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		s := newServices(db)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tSTATUS\tSUPERUSER")
		for offset := 0; ; offset += listPageSize {
			users, total, err := s.users.FindAllPaginated(cmd.Context(), offset, listPageSize)
			if err != nil {
				return fmt.Errorf("listing users: %w", err)
			}
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.Username, u.Email, u.Status, u.IsSuperuser)
			}
			if len(users) == 0 || int64(offset+len(users)) >= total {
				break
			}
		}
		return w.Flush()
	},
}

var listOrgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "List every organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		s := newServices(db)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tOWNER\tTWO-STAGE")
		for offset := 0; ; offset += listPageSize {
			orgs, total, err := s.orgs.FindAllPaginated(cmd.Context(), offset, listPageSize)
			if err != nil {
				return fmt.Errorf("listing organizations: %w", err)
			}
			for _, o := range orgs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", o.ID, o.Name, o.OwnerID, o.RequiresTwoStage)
			}
			if len(orgs) == 0 || int64(offset+len(orgs)) >= total {
				break
			}
		}
		return w.Flush()
	},
}
