package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/emersion/go-autostart"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon and host status",
	Run: func(cmd *cobra.Command, args []string) {
		handleStatus()
	},
}

var controlsCmd = &cobra.Command{
	Use:   "controls",
	Short: "Toggle the mock control switches",
}

var controlsHeater, controlsGreywater string
var controlsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set heater and/or greywater switches",
	Run: func(cmd *cobra.Command, args []string) {
		if controlsHeater == "" && controlsGreywater == "" {
			log.Fatal("Error: specify --heater and/or --greywater (on|off)")
		}
		handleSetControls(controlsHeater, controlsGreywater)
	},
}

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List unacknowledged critical alerts",
	Run: func(cmd *cobra.Command, args []string) {
		handleListAlerts()
	},
}

var alertsAckCmd = &cobra.Command{
	Use:   "ack <id>",
	Short: "Acknowledge an alert",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleAlertFlag(args[0], "ack")
	},
}

var alertsMuteCmd = &cobra.Command{
	Use:   "mute <id>",
	Short: "Mute an alert",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleAlertFlag(args[0], "mute")
	},
}

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the daemon in the default browser",
	Run: func(cmd *cobra.Command, args []string) {
		if err := browser.OpenURL(Client.BaseURL()); err != nil {
			log.Fatalf("Could not open browser: %v", err)
		}
	},
}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage launch-at-login for the daemon",
}

var serviceEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Start the daemon automatically at login",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := daemonAutostart()
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		if err := app.Enable(); err != nil {
			log.Fatalf("Could not enable autostart: %v", err)
		}
		fmt.Println("Daemon will start at login.")
	},
}

var serviceDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Stop starting the daemon at login",
	Run: func(cmd *cobra.Command, args []string) {
		app, err := daemonAutostart()
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		if err := app.Disable(); err != nil {
			log.Fatalf("Could not disable autostart: %v", err)
		}
		fmt.Println("Autostart disabled.")
	},
}

func init() {
	controlsSetCmd.Flags().StringVar(&controlsHeater, "heater", "", "Heater switch (on|off)")
	controlsSetCmd.Flags().StringVar(&controlsGreywater, "greywater", "", "Greywater switch (on|off)")
	controlsCmd.AddCommand(controlsSetCmd)

	alertsCmd.AddCommand(alertsAckCmd, alertsMuteCmd)
	serviceCmd.AddCommand(serviceEnableCmd, serviceDisableCmd)

	RootCmd.AddCommand(statusCmd, controlsCmd, alertsCmd, openCmd, serviceCmd)
}

func handleStatus() {
	stats, err := Client.GetSystemStats()
	if err != nil {
		log.Fatalf("Error getting daemon status: %v", err)
	}

	snap, err := Client.GetInitialData()
	if err != nil {
		log.Fatalf("Error getting snapshot: %v", err)
	}

	fmt.Println("\n--- DAEMON HOST ---")
	fmt.Printf("CPU:    %.1f%%\n", stats.CPUPercent)
	fmt.Printf("Memory: %.1f%% (%d / %d MB)\n", stats.MemoryPercent, stats.MemoryUsed/1024/1024, stats.MemoryTotal/1024/1024)
	fmt.Printf("Uptime: %s\n", (time.Duration(stats.UptimeSeconds) * time.Second).String())

	fmt.Println("\n--- SNAPSHOT ---")
	fmt.Printf("Battery:   %.0f%%\n", snap.Energy.Battery)
	fmt.Printf("Solar:     %.0f W\n", snap.Energy.Solar)
	fmt.Printf("Tank:      %.0f%%\n", snap.Water.TankLevel)
	fmt.Printf("Compost:   %.0f%%\n", snap.Waste.CompostProgress)
	fmt.Printf("Eco score: %s\n", snap.EcoScore.EcoRating)
}

func handleSetControls(heater, greywater string) {
	parse := func(name, value string) *bool {
		if value == "" {
			return nil
		}
		switch value {
		case "on":
			v := true
			return &v
		case "off":
			v := false
			return &v
		default:
			log.Fatalf("Error: --%s must be on or off, got %q", name, value)
			return nil
		}
	}

	controls, err := Client.SetControls(parse("heater", heater), parse("greywater", greywater))
	if err != nil {
		log.Fatalf("Error updating controls: %v", err)
	}

	fmt.Printf("Heater: %s  Greywater: %s\n", onOff(controls.Heater), onOff(controls.Greywater))
}

func handleListAlerts() {
	alerts, err := Client.GetCriticalAlerts()
	if err != nil {
		log.Fatalf("Error listing alerts: %v", err)
	}

	if len(alerts) == 0 {
		fmt.Println("No unacknowledged alerts.")
		return
	}

	fmt.Println("\n--- ALERTS ---")
	for _, a := range alerts {
		fmt.Printf("[%d] %-8s %s\n", a.ID, a.Level, a.Message)
	}
}

func handleAlertFlag(idArg, action string) {
	id, err := strconv.Atoi(idArg)
	if err != nil {
		log.Fatalf("Error: alert id must be a number, got %q", idArg)
	}

	switch action {
	case "ack":
		_, err = Client.AcknowledgeAlert(id)
	case "mute":
		_, err = Client.MuteAlert(id)
	}
	if err != nil {
		log.Fatalf("Error updating alert: %v", err)
	}
	fmt.Printf("Alert %d %sed.\n", id, action)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// daemonAutostart assumes the daemon binary is installed next to the CLI.
func daemonAutostart() (*autostart.App, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	daemonPath := filepath.Join(filepath.Dir(exe), "ecocore-server")

	return &autostart.App{
		Name:        "ecocore",
		DisplayName: "ECO-CORE Daemon",
		Exec:        []string{daemonPath},
	}, nil
}
