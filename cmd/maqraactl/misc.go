// Remaining read-only views: students, transactions, reports, profile.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var studentsCmd = &cobra.Command{
	Use:   "students",
	Short: "List all registered students",
	RunE: func(cmd *cobra.Command, args []string) error {
		students, err := session.Students(cmd.Context(), flagForce)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(students)
		}
		rows := make([]string, 0, len(students))
		for _, s := range students {
			classes := make([]string, 0, len(s.Classes))
			for _, c := range s.Classes {
				classes = append(classes, c.String())
			}
			rows = append(rows, cells(s.ID.String(), truncate(s.Name, 32), s.Email, s.Status, strings.Join(classes, ",")))
		}
		table(cells("ID", "NAME", "EMAIL", "STATUS", "CLASSES"), rows)
		return nil
	},
}

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "List payment transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		txs, err := session.Transactions(cmd.Context(), flagForce)
		if err != nil {
			return err
		}
		return printJSON(txs)
	},
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Show the dashboard statistics cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		reports, err := session.Reports(cmd.Context(), flagForce)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(reports)
		}
		for _, r := range reports {
			fmt.Printf("%s: %s\n", r.Title, r.Value)
		}
		return nil
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the signed-in administrator's account",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := session.Profile(cmd.Context(), flagForce)
		if err != nil {
			return err
		}
		return printJSON(profile)
	},
}
