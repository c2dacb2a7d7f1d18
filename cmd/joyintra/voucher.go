package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/1taes/JOY-Intranet/internal/cli"
	"github.com/1taes/JOY-Intranet/internal/model"
)

func voucherCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voucher",
		Short: "Manage support vouchers",
		Long:  `Redeem support vouchers against the monthly quota and inspect usage.`,
	}

	cmd.AddCommand(voucherUseCmd())
	cmd.AddCommand(voucherStatusCmd())
	cmd.AddCommand(voucherTypesCmd())
	cmd.AddCommand(voucherSetMaxCmd())
	cmd.AddCommand(voucherGrantCmd())

	return cmd
}

func voucherUseCmd() *cobra.Command {
	var (
		uid  string
		name string
	)
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Redeem a voucher",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.userByUID(cmd.Context(), uid)
			if err != nil {
				return err
			}
			status, err := a.vouchers.Use(cmd.Context(), user.UID, name)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Redeemed %s. %d use(s) left in %s.", name, status.Remaining, status.Month)))
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "member's unique number")
	cmd.Flags().StringVar(&name, "name", "", "voucher name")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func voucherStatusCmd() *cobra.Command {
	var (
		uid   string
		month string
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a member's monthly voucher quota",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if month == "" {
				month = a.vouchers.CurrentMonth()
			}
			status := a.vouchers.StatusFor(cmd.Context(), uid, month)
			fmt.Println(cli.FormatTitle(fmt.Sprintf("Vouchers for %s in %s", uid, status.Month)))
			fmt.Printf("base %d + bonus %d - used %d = %s remaining\n",
				status.Base, status.Bonus, status.Used,
				cli.BoldStyle.Render(strconv.Itoa(status.Remaining)))

			uses, err := a.vouchers.History(cmd.Context(), uid, month)
			if err != nil {
				return err
			}
			for _, u := range uses {
				fmt.Printf("  %s  %s\n", u.UsedAt, u.Voucher)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "member's unique number")
	cmd.Flags().StringVar(&month, "month", "", "quota month YYYY-MM (default: current)")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}

func voucherTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List voucher types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			types, err := a.vouchers.Types(cmd.Context())
			if err != nil {
				return err
			}
			if len(types) == 0 {
				fmt.Println(cli.InfoStyle.Render("No voucher types configured."))
				return nil
			}
			for _, tp := range types {
				fmt.Println(tp.Name)
			}
			return nil
		},
	}
}

func voucherSetMaxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-max <count>",
		Short: "Set the monthly redemption cap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			max, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid count %q", args[0])
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.vouchers.SetMaxCount(cmd.Context(), max); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Monthly voucher cap set to %d", max)))
			return nil
		},
	}
}

func voucherGrantCmd() *cobra.Command {
	var (
		uid    string
		count  int
		month  string
		reason string
	)
	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Grant bonus redemptions for one month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			bonus := model.VoucherBonus{Month: month, UID: uid, Count: count, Reason: reason}
			if err := a.vouchers.GrantBonus(cmd.Context(), bonus); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Granted %d bonus use(s) to %s", count, uid)))
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "member's unique number")
	cmd.Flags().IntVar(&count, "count", 1, "bonus uses to grant")
	cmd.Flags().StringVar(&month, "month", "", "quota month YYYY-MM (default: current)")
	cmd.Flags().StringVar(&reason, "reason", "", "grant reason")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}
