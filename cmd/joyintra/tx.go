package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/1taes/JOY-Intranet/internal/cli"
	"github.com/1taes/JOY-Intranet/internal/model"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage the transaction ledger",
	}

	cmd.AddCommand(txAddCmd())
	cmd.AddCommand(txListCmd())
	cmd.AddCommand(txDeleteCmd())
	cmd.AddCommand(txItemsCmd())

	return cmd
}

func txAddCmd() *cobra.Command {
	var (
		uid          string
		item         string
		quantity     int
		customerID   string
		customerName string
		content      string
		date         string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record a sale in the transaction ledger. Price and public deposit come
from the item catalog; per-day purchase limits are enforced per customer.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.userByUID(cmd.Context(), uid)
			if err != nil {
				return err
			}

			items, err := a.tx.Items(cmd.Context())
			if err != nil {
				return err
			}
			var catalog *model.TxItem
			for i := range items {
				if items[i].Name == item {
					catalog = &items[i]
					break
				}
			}
			if catalog == nil {
				return fmt.Errorf("unknown transaction item %q", item)
			}
			if quantity < 1 {
				quantity = 1
			}

			rec := model.TxRecord{
				Date:          date,
				Item:          item,
				Quantity:      quantity,
				Amount:        catalog.Price.Mul(decimalFromInt(quantity)),
				PublicDeposit: catalog.PublicDeposit.Mul(decimalFromInt(quantity)),
				CustomerID:    customerID,
				CustomerName:  customerName,
				Content:       content,
				WriterUID:     user.UID,
			}
			if err := a.tx.Add(cmd.Context(), rec); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %dx %s for %s", quantity, item, customerID)))
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "writer's unique number")
	cmd.Flags().StringVar(&item, "item", "", "catalog item name")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "quantity sold")
	cmd.Flags().StringVar(&customerID, "customer-id", "", "customer unique number")
	cmd.Flags().StringVar(&customerName, "customer-name", "", "customer name")
	cmd.Flags().StringVar(&content, "content", "", "free-form note")
	cmd.Flags().StringVar(&date, "date", "", "report date (default: today)")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("customer-id")
	return cmd
}

func txListCmd() *cobra.Command {
	var (
		uid  string
		date string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a writer's transactions for one day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if date == "" {
				date = a.today()
			}
			records, err := a.tx.RecordsByDate(cmd.Context(), date, uid)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No transactions on %s.", date)))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Row"),
				cli.HeaderStyle.Render("Time"),
				cli.HeaderStyle.Render("Item"),
				cli.HeaderStyle.Render("Qty"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Public"),
				cli.HeaderStyle.Render("Customer"))
			for _, r := range records {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
					r.RowIndex, r.Time, r.Item, r.Quantity, r.Amount, r.PublicDeposit, r.CustomerID)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "writer's unique number")
	cmd.Flags().StringVar(&date, "date", "", "report date (default: today)")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}

func txDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <row>",
		Short: "Delete a transaction row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid row number %q", args[0])
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if !yes && !cli.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete transaction row %d?", row)) {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}
			if err := a.tx.Delete(cmd.Context(), row); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction row %d", row)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation")
	return cmd
}

func txItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List the transaction item catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			items, err := a.tx.Items(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println(cli.InfoStyle.Render("The item catalog is empty."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Item"),
				cli.HeaderStyle.Render("Price"),
				cli.HeaderStyle.Render("Public"),
				cli.HeaderStyle.Render("Daily limit"))
			for _, it := range items {
				limit := "-"
				if it.Limit > 0 {
					limit = strconv.Itoa(it.Limit)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", it.Name, it.Price, it.PublicDeposit, limit)
			}
			return nil
		},
	}
}
