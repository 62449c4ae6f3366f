package cmd

import (
	"fmt"
	"os"

	"ecocore/pkg/sdk"

	"github.com/spf13/cobra"
)

var (
	Client  *sdk.Client
	BaseURL string
)

var RootCmd = &cobra.Command{
	Use:   "ecocore-cli",
	Short: "Terminal client for the ECO-CORE home monitoring daemon",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Client = sdk.NewClient(BaseURL)
		if token, err := loadToken(); err == nil && token != "" {
			Client.SetToken(token)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		RunDashboard()
	},
}

func Execute() {
	RootCmd.PersistentFlags().StringVar(&BaseURL, "url", "http://localhost:3000", "URL of the ECO-CORE daemon")

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
