package cmd

import (
	"fmt"
	"log"

	"ecocore/internal/cli/ui"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the daemon and store the session token",
	Run: func(cmd *cobra.Command, args []string) {
		username, password, ok := ui.RunLoginForm("Log in to ECO-CORE")
		if !ok {
			return
		}

		resp, err := Client.Login(username, password)
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}

		if err := saveToken(resp.Token); err != nil {
			log.Fatalf("Could not store token: %v", err)
		}

		fmt.Printf("Logged in as %s\n", resp.User.Username)
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account on the daemon",
	Run: func(cmd *cobra.Command, args []string) {
		username, password, ok := ui.RunLoginForm("Register with ECO-CORE")
		if !ok {
			return
		}

		resp, err := Client.Register(username, password)
		if err != nil {
			log.Fatalf("Registration failed: %v", err)
		}

		fmt.Printf("Registered %s. Run `ecocore-cli login` to start a session.\n", resp.User.Username)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	Run: func(cmd *cobra.Command, args []string) {
		if err := clearToken(); err != nil {
			log.Fatalf("Could not remove token: %v", err)
		}
		fmt.Println("Logged out.")
	},
}

func init() {
	RootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)
}
