package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1taes/JOY-Intranet/internal/auth"
	"github.com/1taes/JOY-Intranet/internal/cli"
)

func registerCmd() *cobra.Command {
	var (
		uid      string
		name     string
		password string
	)
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new member (pending approval)",
		Long: `Register adds a member row to the roster sheet. The account stays
pending until an administrator approves it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			if uid == "" {
				uid = auth.NewUID()
			}
			if err := a.auth.Register(cmd.Context(), uid, name, password); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Registered %s with unique number %s. Waiting for approval.", name, uid)))
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "unique number (generated when omitted)")
	cmd.Flags().StringVar(&name, "name", "", "member name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func loginCmd() *cobra.Command {
	var (
		uid      string
		password string
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify a member's credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			user, err := a.auth.Login(cmd.Context(), uid, password)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Welcome, %s (%s)", user.Name, user.Role)))
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "unique number")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
