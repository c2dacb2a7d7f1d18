package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/1taes/JOY-Intranet/internal/cli"
)

func rpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rp",
		Short: "Manage the RP report ledger",
	}

	cmd.AddCommand(rpAddCmd())
	cmd.AddCommand(rpListCmd())
	cmd.AddCommand(rpDeleteCmd())
	cmd.AddCommand(rpItemsCmd())

	return cmd
}

func rpAddCmd() *cobra.Command {
	var (
		uid     string
		item    string
		count   int
		content string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Submit RP reports",
		Long: `Submit one or more RP reports. Each performance becomes its own ledger
row at the catalog's per-unit price.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.userByUID(cmd.Context(), uid)
			if err != nil {
				return err
			}
			if err := a.rp.Add(cmd.Context(), item, count, content, user.UID); err != nil {
				return err
			}
			if count < 1 {
				count = 1
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Submitted %d RP report(s) for %s", count, item)))
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "writer's unique number")
	cmd.Flags().StringVar(&item, "item", "", "RP item name")
	cmd.Flags().IntVar(&count, "count", 1, "number of performances")
	cmd.Flags().StringVar(&content, "content", "", "remarks")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("item")
	return cmd
}

func rpListCmd() *cobra.Command {
	var (
		uid  string
		date string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a writer's RP reports for one day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if date == "" {
				date = a.today()
			}
			records, err := a.rp.RecordsByDate(cmd.Context(), date, uid)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("No RP reports on %s.", date)))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Row"),
				cli.HeaderStyle.Render("Time"),
				cli.HeaderStyle.Render("Item"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Remarks"))
			for _, r := range records {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.RowIndex, r.Time, r.Item, r.Amount, r.Content)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "writer's unique number")
	cmd.Flags().StringVar(&date, "date", "", "report date (default: today)")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}

func rpDeleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <row>",
		Short: "Delete an RP report row",
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
			if !yes && !cli.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete RP row %d?", row)) {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}
			if err := a.rp.Delete(cmd.Context(), row); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted RP row %d", row)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation")
	return cmd
}

func rpItemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List the RP item catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			items, err := a.rp.Items(cmd.Context())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println(cli.InfoStyle.Render("The RP catalog is empty."))
				return nil
			}
			for _, it := range items {
				fmt.Printf("%s\t%s\n", it.Name, it.Price)
			}
			return nil
		},
	}
}
