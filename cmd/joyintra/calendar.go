package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/1taes/JOY-Intranet/internal/cli"
	"github.com/1taes/JOY-Intranet/internal/model"
)

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Manage the club schedule",
	}

	cmd.AddCommand(calendarListCmd())
	cmd.AddCommand(calendarAddCmd())
	cmd.AddCommand(calendarDeleteCmd())

	return cmd
}

func calendarListCmd() *cobra.Command {
	var (
		date  string
		month string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedule entries",
		Long:  `List entries for a date or a month. Defaults to today's entries.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			var entries []model.CalendarEntry
			switch {
			case date != "":
				entries, err = a.calendar.ByDate(cmd.Context(), date)
			case month != "":
				entries, err = a.calendar.ByMonth(cmd.Context(), month)
			default:
				entries, err = a.calendar.Today(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println(cli.InfoStyle.Render("No schedule entries."))
				return nil
			}
			for _, e := range entries {
				line := fmt.Sprintf("row %d: %s  %s", e.RowIndex, e.Date, cli.BoldStyle.Render(e.Title))
				if e.Description != "" {
					line += "  " + cli.SubtleStyle.Render(e.Description)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "list one date YYYY-MM-DD")
	cmd.Flags().StringVar(&month, "month", "", "list one month YYYY-MM")
	return cmd
}

func calendarAddCmd() *cobra.Command {
	var (
		uid         string
		date        string
		title       string
		description string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a schedule entry (executives and above)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.userByUID(cmd.Context(), uid)
			if err != nil {
				return err
			}
			if err := a.calendar.Add(cmd.Context(), user, date, title, description); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %q on %s", title, date)))
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "author's unique number")
	cmd.Flags().StringVar(&date, "date", "", "entry date YYYY-MM-DD")
	cmd.Flags().StringVar(&title, "title", "", "entry title")
	cmd.Flags().StringVar(&description, "description", "", "entry description")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func calendarDeleteCmd() *cobra.Command {
	var (
		uid string
		yes bool
	)
	cmd := &cobra.Command{
		Use:   "delete <row>",
		Short: "Delete a schedule entry (executives and above)",
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
			user, err := a.userByUID(cmd.Context(), uid)
			if err != nil {
				return err
			}
			if !yes && !cli.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Delete schedule row %d?", row)) {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}
			if err := a.calendar.Delete(cmd.Context(), user, row); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted schedule row %d", row)))
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "actor's unique number")
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}
