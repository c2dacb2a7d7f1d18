package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1taes/JOY-Intranet/internal/cli"
)

func statsCmd() *cobra.Command {
	var (
		uid  string
		week string
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a member's weekly summary",
		Long: `Show one member's weekly numbers: net transaction profit, RP reports,
event purchases, and the expected weekly pay. Weeks run Monday through
Sunday and default to the current one.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			sum, err := a.stats.WeeklySummary(cmd.Context(), uid, week)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("%s (%s ~ %s)", sum.Label, sum.StartDate, sum.EndDate)))
			fmt.Printf("net profit      %s\n", sum.NetProfit)
			fmt.Printf("rp reports      %d for %s\n", sum.RPCount, sum.RPTotal)
			fmt.Printf("event purchases %d for %s\n", sum.EventCount, sum.EventTotal)
			fmt.Printf("expected pay    %s\n", cli.BoldStyle.Render(sum.ExpectedPay.String()))
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "member's unique number")
	cmd.Flags().StringVar(&week, "week", "", "week label YYYY-WNN (default: current)")
	_ = cmd.MarkFlagRequired("uid")

	cmd.AddCommand(statsAdminCmd())
	return cmd
}

func statsAdminCmd() *cobra.Command {
	var week string
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Show every member's weekly activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			members, err := a.stats.AdminWeekly(cmd.Context(), week)
			if err != nil {
				return err
			}
			if len(members) == 0 {
				fmt.Println(cli.InfoStyle.Render("No approved members."))
				return nil
			}

			for _, m := range members {
				fmt.Println(cli.FormatTitle(fmt.Sprintf("%s (%s, %s)", m.Name, m.UID, m.Role)))
				fmt.Printf("  transactions %d, rp reports %d, event purchases %d\n",
					len(m.Transactions), len(m.RPReports), len(m.Events))
				fmt.Printf("  vouchers used this week %d, remaining this month %d\n",
					len(m.VoucherUses), m.VoucherRemaining)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&week, "week", "", "week label YYYY-WNN (default: current)")
	return cmd
}
