package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/1taes/JOY-Intranet/internal/cli"
	"github.com/1taes/JOY-Intranet/internal/model"
)

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage the member roster",
		Long:  `List members, approve or reject pending registrations, and change roles.`,
	}

	cmd.AddCommand(listUsersCmd())
	cmd.AddCommand(pendingUsersCmd())
	cmd.AddCommand(approveUserCmd())
	cmd.AddCommand(rejectUserCmd())
	cmd.AddCommand(banUserCmd())
	cmd.AddCommand(setRoleCmd())

	return cmd
}

func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all members",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			users, err := a.auth.Users(cmd.Context())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Println(cli.InfoStyle.Render("No members registered yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Row"),
				cli.HeaderStyle.Render("UID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Role"),
				cli.HeaderStyle.Render("Status"))
			for _, u := range users {
				status := "approved"
				role := u.Role.String()
				if !u.Approved {
					status = cli.WarningStyle.Render("pending")
					role = "-"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.RowIndex, u.UID, u.Name, role, status)
			}
			return nil
		},
	}
}

func pendingUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List registrations waiting for approval",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			users, err := a.auth.Users(cmd.Context())
			if err != nil {
				return err
			}
			var pending []model.User
			for _, u := range users {
				if !u.Approved {
					pending = append(pending, u)
				}
			}
			if len(pending) == 0 {
				fmt.Println(cli.InfoStyle.Render("No pending registrations."))
				return nil
			}
			for _, u := range pending {
				fmt.Printf("row %d: %s (%s)\n", u.RowIndex, u.Name, u.UID)
			}
			return nil
		},
	}
}

func approveUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <row>",
		Short: "Approve a pending registration",
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
			if err := a.auth.Approve(cmd.Context(), row); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Approved member at row %d", row)))
			return nil
		},
	}
}

func rejectUserCmd() *cobra.Command {
	return removeUserCmd("reject", "Reject and remove a pending registration")
}

func banUserCmd() *cobra.Command {
	return removeUserCmd("ban", "Remove a member from the roster")
}

// removeUserCmd covers reject and ban; both delete the roster row, the
// difference is only which kind of row the admin points them at.
func removeUserCmd(use, short string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   use + " <row>",
		Short: short,
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
			if !yes && !cli.Confirm(os.Stdin, os.Stdout, fmt.Sprintf("Remove roster row %d?", row)) {
				fmt.Println(cli.SubtleStyle.Render("Cancelled."))
				return nil
			}
			if err := a.auth.Remove(cmd.Context(), row); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed roster row %d", row)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation")
	return cmd
}

func setRoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role <row> <level>",
		Short: "Change a member's role level (0-3)",
		Long: `Set the numeric role level of an approved member:
0 = normal, 1 = executive, 2 = senior, 3 = admin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid row number %q", args[0])
			}
			level, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil || level < int(model.RoleNormal) || level > int(model.RoleAdmin) {
				return fmt.Errorf("invalid role level %q (expected 0-3)", args[1])
			}
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.auth.SetRole(cmd.Context(), row, model.RoleLevel(level)); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Row %d role set to %s", row, model.RoleLevel(level))))
			return nil
		},
	}
}
