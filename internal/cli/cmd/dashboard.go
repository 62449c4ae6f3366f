package cmd

import (
	"fmt"

	"ecocore/internal/cli/ui"
)

func RunDashboard() {
	if Client.Token() == "" {
		fmt.Println("Not logged in. Run `ecocore-cli login` first.")
		return
	}
	ui.RunDashboard(Client)
}
