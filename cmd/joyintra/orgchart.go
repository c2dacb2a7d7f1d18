package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/1taes/JOY-Intranet/internal/cli"
	"github.com/1taes/JOY-Intranet/internal/model"
)

func orgchartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orgchart",
		Short: "Manage the organization chart",
	}

	cmd.AddCommand(orgchartShowCmd())
	cmd.AddCommand(orgchartAddCmd())
	cmd.AddCommand(orgchartRemoveCmd())

	return cmd
}

func orgchartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the chart grouped by position",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			positions, grouped, err := a.orgchart.Grouped(cmd.Context())
			if err != nil {
				return err
			}
			if len(positions) == 0 {
				fmt.Println(cli.InfoStyle.Render("The org chart is empty."))
				return nil
			}
			for _, pos := range positions {
				fmt.Println(cli.FormatTitle(pos))
				for _, m := range grouped[pos] {
					line := fmt.Sprintf("  row %d: %s", m.RowIndex, m.Name)
					if m.Title != "" {
						line += " " + cli.SubtleStyle.Render("("+m.Title+")")
					}
					fmt.Println(line)
				}
			}
			return nil
		},
	}
}

func orgchartAddCmd() *cobra.Command {
	var (
		uid      string
		name     string
		position string
		title    string
		imageURL string
		order    int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member to the chart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.userByUID(cmd.Context(), uid)
			if err != nil {
				return err
			}
			member := model.OrgMember{
				Name:     name,
				Position: position,
				ImageURL: imageURL,
				Order:    order,
				AddedBy:  user.UID,
				Title:    title,
			}
			if err := a.orgchart.Add(cmd.Context(), member); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s to the org chart", name)))
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "actor's unique number")
	cmd.Flags().StringVar(&name, "name", "", "member name")
	cmd.Flags().StringVar(&position, "position", "", "position group")
	cmd.Flags().StringVar(&title, "title", "", "display title")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "profile image URL")
	cmd.Flags().IntVar(&order, "order", 1, "sort order within the group")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("position")
	return cmd
}

func orgchartRemoveCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "remove <row>",
		Short: "Remove a chart row",
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
			if !yes && !cli.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Remove org chart row %d?", row)) {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}
			if err := a.orgchart.Remove(cmd.Context(), row); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed org chart row %d", row)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation")
	return cmd
}
