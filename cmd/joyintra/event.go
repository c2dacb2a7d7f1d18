package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1taes/JOY-Intranet/internal/cli"
)

func eventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage event purchases",
	}

	cmd.AddCommand(eventJoinCmd())
	cmd.AddCommand(eventListCmd())
	cmd.AddCommand(eventItemsCmd())

	return cmd
}

func eventJoinCmd() *cobra.Command {
	var (
		uid    string
		item   string
		detail string
	)
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Record an event purchase",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.userByUID(cmd.Context(), uid)
			if err != nil {
				return err
			}
			if err := a.events.Participate(cmd.Context(), item, detail, user.UID); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded event purchase of %s", item)))
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "buyer's unique number")
	cmd.Flags().StringVar(&item, "item", "", "event item name")
	cmd.Flags().StringVar(&detail, "detail", "", "purchase detail")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func eventListCmd() *cobra.Command {
	var uid string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List event purchases",
		Long:  `List event purchases, optionally restricted to one buyer.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			purchases, err := a.events.History(cmd.Context(), uid)
			if err != nil {
				return err
			}
			if len(purchases) == 0 {
				fmt.Println(cli.InfoStyle.Render("No event purchases recorded."))
				return nil
			}
			for _, p := range purchases {
				fmt.Printf("row %d: %s %s %s %s (%s)\n", p.RowIndex, p.Date, p.Time, p.Item, p.Amount, p.BuyerUID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "buyer's unique number (all buyers when omitted)")
	return cmd
}

func eventItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List the event item catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			items, err := a.events.Items(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println(cli.InfoStyle.Render("The event catalog is empty."))
				return nil
			}
			for _, it := range items {
				fmt.Printf("%s\t%s\n", it.Name, it.Price)
			}
			return nil
		},
	}
}
