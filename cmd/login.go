package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"galaxy-cinema-cli/store"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and save the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := promptEmail()
		if err != nil {
			return err
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}

		client, _ := newClient()
		ctx := cmdContext(cmd)
		token, err := client.Login(ctx, email, password)
		if err != nil {
			return err
		}
		user, err := client.Profile(ctx)
		if err != nil {
			return err
		}

		session := store.Session{
			Token:    token,
			UserId:   user.Id,
			Fullname: user.Fullname,
			Role:     user.Role,
		}
		if err := store.SaveSession(session); err != nil {
			return err
		}
		fmt.Printf("Signed in as %s\n", user.Fullname)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.ClearSession(); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := requireSession()
		if err != nil {
			return err
		}
		role := "customer"
		if session.IsStaff() {
			role = "staff"
		}
		fmt.Printf("%s (%s)\n", session.Fullname, role)
		return nil
	},
}

func promptEmail() (string, error) {
	prompt := promptui.Prompt{
		Label: "Email",
		Validate: func(input string) error {
			if input == "" {
				return fmt.Errorf("email is required")
			}
			return nil
		},
	}
	return prompt.Run()
}

func promptPassword() (string, error) {
	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if input == "" {
				return fmt.Errorf("password is required")
			}
			return nil
		},
	}
	return prompt.Run()
}
