// Pending signup commands: the list with its checkout countdowns, and the
// payment-link resend.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	maqraa "github.com/maqraa/maqraa.go"
	"github.com/maqraa/maqraa.go/pkg/models"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List signups awaiting payment",
	RunE:  runPendingList,
}

var pendingResendCmd = &cobra.Command{
	Use:   "resend <pending-id>",
	Short: "Re-send a pending signup's checkout link",
	Args:  cobra.ExactArgs(1),
	RunE:  runPendingResend,
}

func init() {
	pendingCmd.AddCommand(pendingResendCmd)
}

func runPendingList(cmd *cobra.Command, args []string) error {
	users, err := session.PendingUsers(cmd.Context(), flagForce)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(users)
	}

	countdown := maqraa.NewCountdown(session.Store())
	countdown.Sync()

	rows := make([]string, 0, len(users))
	for _, u := range users {
		left := "expired"
		if d, ok := countdown.Remaining(u.ID); ok {
			left = maqraa.FormatRemaining(d)
		}
		plan := ""
		if u.Plan != nil {
			plan = u.Plan.Title
		}
		rows = append(rows, cells(u.ID.String(), truncate(u.Name, 32), u.Email, plan, left))
	}
	table(cells("ID", "NAME", "EMAIL", "PLAN", "TIME LEFT"), rows)
	return nil
}

func runPendingResend(cmd *cobra.Command, args []string) error {
	users, err := session.PendingUsers(cmd.Context(), flagForce)
	if err != nil {
		return err
	}
	id := models.PendingUserID(args[0])
	for _, u := range users {
		if u.ID != id {
			continue
		}
		countdown := maqraa.NewCountdown(session.Store())
		countdown.Sync()
		left := ""
		if d, ok := countdown.Remaining(u.ID); ok {
			left = maqraa.FormatRemaining(d)
		}
		return session.ResendPaymentLink(cmd.Context(), u.Email, u.CheckoutURL, left)
	}
	return fmt.Errorf("pending signup %s not found", id)
}
