// Subscription plan commands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maqraa/maqraa.go/pkg/api"
	"github.com/maqraa/maqraa.go/pkg/models"
)

var (
	planTitle         string
	planPrice         float64
	planDurationValue int
	planDurationType  string
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List and manage subscription plans",
	RunE:  runPlansList,
}

var plansAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a subscription plan",
	RunE:  runPlansAdd,
}

var plansUpdateCmd = &cobra.Command{
	Use:   "update <plan-id>",
	Short: "Edit a subscription plan",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlansUpdate,
}

var plansDeleteCmd = &cobra.Command{
	Use:   "delete <plan-id>",
	Short: "Remove a subscription plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return session.DeletePlan(cmd.Context(), models.PlanID(args[0]))
	},
}

func init() {
	for _, c := range []*cobra.Command{plansAddCmd, plansUpdateCmd} {
		c.Flags().StringVar(&planTitle, "title", "", "plan title (required)")
		c.Flags().Float64Var(&planPrice, "price", 0, "price")
		c.Flags().IntVar(&planDurationValue, "duration", 1, "duration value")
		c.Flags().StringVar(&planDurationType, "duration-type", "month", "duration unit (day, month, year)")
		_ = c.MarkFlagRequired("title")
	}

	plansCmd.AddCommand(plansAddCmd)
	plansCmd.AddCommand(plansUpdateCmd)
	plansCmd.AddCommand(plansDeleteCmd)
}

func runPlansList(cmd *cobra.Command, args []string) error {
	plans, err := session.Plans(cmd.Context(), flagForce)
	if err != nil {
		return err
	}
	if flagJSON {
		return printJSON(plans)
	}
	rows := make([]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, cells(
			p.ID.String(),
			truncate(p.Title, 32),
			fmt.Sprintf("%.2f", p.Price),
			fmt.Sprintf("%d %s", p.DurationValue, p.DurationType),
		))
	}
	table(cells("ID", "TITLE", "PRICE", "DURATION"), rows)
	return nil
}

func runPlansAdd(cmd *cobra.Command, args []string) error {
	created, err := session.CreatePlan(cmd.Context(), api.NewPlan{
		Title:         planTitle,
		Price:         planPrice,
		DurationValue: planDurationValue,
		DurationType:  planDurationType,
	})
	if err != nil {
		return err
	}
	fmt.Println("Created plan", created.ID)
	return nil
}

func runPlansUpdate(cmd *cobra.Command, args []string) error {
	return session.UpdatePlan(cmd.Context(), models.PlanID(args[0]), api.NewPlan{
		Title:         planTitle,
		Price:         planPrice,
		DurationValue: planDurationValue,
		DurationType:  planDurationType,
	})
}
