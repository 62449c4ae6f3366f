package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"ecocore/pkg/sdk"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gorilla/websocket"
)

type dashboardModel struct {
	client   *sdk.Client
	conn     *websocket.Conn
	sub      chan sdk.FeedEvent
	snapshot *sdk.Snapshot
	updated  time.Time
	message  string
	err      error
	width    int
	height   int
}

type feedMsg sdk.FeedEvent
type feedClosedMsg struct{ err error }
type controlsMsg sdk.Controls
type ackMsg sdk.Alert
type errMsg error
type clearMessageMsg struct{}

// RunDashboard opens the websocket feed and renders the live dashboard until
// the user quits.
func RunDashboard(client *sdk.Client) {
	wsURL, err := client.GetWebSocketURL("/ws/dashboard")
	if err != nil {
		fmt.Printf("Error building feed URL: %v\n", err)
		os.Exit(1)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		fmt.Printf("Error connecting to daemon feed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	sub := make(chan sdk.FeedEvent, 8)
	go readFeed(conn, sub)

	m := dashboardModel{
		client: client,
		conn:   conn,
		sub:    sub,
	}

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running dashboard: %v\n", err)
		os.Exit(1)
	}
}

func readFeed(conn *websocket.Conn, sub chan sdk.FeedEvent) {
	defer close(sub)
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var event sdk.FeedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			continue
		}
		sub <- event
	}
}

func waitForFeed(sub chan sdk.FeedEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-sub
		if !ok {
			return feedClosedMsg{err: fmt.Errorf("feed closed by daemon")}
		}
		return feedMsg(event)
	}
}

func clearMessageCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearMessageMsg{}
	})
}

func (m dashboardModel) Init() tea.Cmd {
	return waitForFeed(m.sub)
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "h":
			return m.toggleControl("heater")
		case "g":
			return m.toggleControl("greywater")
		case "a":
			return m.ackFirstAlert()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case feedMsg:
		snap := msg.Data
		m.snapshot = &snap
		m.updated = time.Now()
		return m, waitForFeed(m.sub)

	case feedClosedMsg:
		m.err = msg.err
		return m, tea.Quit

	case controlsMsg:
		if m.snapshot != nil {
			m.snapshot.Controls = sdk.Controls(msg)
		}
		return m, clearMessageCmd()

	case ackMsg:
		m.message = fmt.Sprintf("Acknowledged alert %d", msg.ID)
		return m, clearMessageCmd()

	case clearMessageMsg:
		m.message = ""
		return m, nil

	case errMsg:
		m.message = fmt.Sprintf("Error: %v", msg)
		return m, clearMessageCmd()
	}

	return m, nil
}

func (m dashboardModel) toggleControl(name string) (tea.Model, tea.Cmd) {
	if m.snapshot == nil {
		return m, nil
	}

	var heater, greywater *bool
	switch name {
	case "heater":
		v := !m.snapshot.Controls.Heater
		heater = &v
	case "greywater":
		v := !m.snapshot.Controls.Greywater
		greywater = &v
	}

	m.message = fmt.Sprintf("Toggling %s...", name)
	client := m.client
	return m, func() tea.Msg {
		controls, err := client.SetControls(heater, greywater)
		if err != nil {
			return errMsg(err)
		}
		return controlsMsg(*controls)
	}
}

func (m dashboardModel) ackFirstAlert() (tea.Model, tea.Cmd) {
	if m.snapshot == nil {
		return m, nil
	}

	var id int
	found := false
	for _, a := range m.snapshot.Alerts {
		if !a.Acknowledged {
			id = a.ID
			found = true
			break
		}
	}
	if !found {
		m.message = "No unacknowledged alerts"
		return m, clearMessageCmd()
	}

	client := m.client
	return m, func() tea.Msg {
		alert, err := client.AcknowledgeAlert(id)
		if err != nil {
			return errMsg(err)
		}
		return ackMsg(*alert)
	}
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.snapshot == nil {
		return "\n  Waiting for first snapshot..."
	}

	snap := m.snapshot

	title := headerStyle.Render("ECO-CORE")
	clock := descStyle.Render(fmt.Sprintf("updated %s", m.updated.Format("15:04:05")))

	energy := renderCard("ENERGY", []string{
		fmt.Sprintf("Battery  %3.0f %%", snap.Energy.Battery),
		fmt.Sprintf("Solar    %3.0f W", snap.Energy.Solar),
		fmt.Sprintf("Wind     %3.0f W", snap.Energy.Wind),
		fmt.Sprintf("Today    %.1f kWh", snap.Energy.DailyProduction),
		fmt.Sprintf("Week     %.1f kWh", snap.Energy.WeeklyProduction),
	})

	water := renderCard("WATER", []string{
		fmt.Sprintf("Tank     %3.0f %%", snap.Water.TankLevel),
		fmt.Sprintf("Filter   %s", snap.Water.FilterStatus),
		fmt.Sprintf("Today    %3.0f L", snap.Water.DailyUsage),
		fmt.Sprintf("Week     %3.0f L", snap.Water.WeeklyUsage),
	})

	waste := renderCard("WASTE", []string{
		fmt.Sprintf("Temp     %3.0f °C", snap.Waste.Temperature),
		fmt.Sprintf("Status   %s", snap.Waste.Status),
		fmt.Sprintf("Compost  %3.0f %%", snap.Waste.CompostProgress),
		fmt.Sprintf("Emptied  %s", snap.Waste.LastEmptied),
	})

	score := renderCard("ECO SCORE", []string{
		fmt.Sprintf("Saved    %.1f kWh", snap.EcoScore.WeeklyEnergySaved),
		fmt.Sprintf("Offset   %.1f kg", snap.EcoScore.CarbonOffset),
		fmt.Sprintf("Rating   %s", snap.EcoScore.EcoRating),
		fmt.Sprintf("Badges   %d", len(snap.EcoScore.Achievements)),
	})

	cards := lipgloss.JoinHorizontal(lipgloss.Top, energy, water, waste, score)

	controls := fmt.Sprintf("Heater: %s   Greywater: %s",
		onOffIndicator(snap.Controls.Heater),
		onOffIndicator(snap.Controls.Greywater),
	)

	alerts := renderAlerts(snap.Alerts)

	help := keyStyle.Render("h") + descStyle.Render(": heater") +
		descStyle.Render(" • ") + keyStyle.Render("g") + descStyle.Render(": greywater") +
		descStyle.Render(" • ") + keyStyle.Render("a") + descStyle.Render(": ack alert") +
		descStyle.Render(" • ") + keyStyle.Render("q") + descStyle.Render(": quit")

	footer := help
	if m.message != "" {
		footer = m.message + "   " + help
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title+" "+clock,
		cards,
		baseStyle.Render(controls),
		alerts,
		footer,
	) + "\n"
}

func renderCard(title string, lines []string) string {
	content := cardTitleStyle.Render(title)
	for _, line := range lines {
		content += "\n" + line
	}
	return baseStyle.Render(content)
}

func renderAlerts(alerts []sdk.Alert) string {
	if len(alerts) == 0 {
		return baseStyle.Render(descStyle.Render("No alerts"))
	}

	content := cardTitleStyle.Render("ALERTS")
	for _, a := range alerts {
		var levelStyle lipgloss.Style
		switch a.Level {
		case "critical":
			levelStyle = criticalStyle
		case "warning":
			levelStyle = warningStyle
		default:
			levelStyle = infoStyle
		}

		line := fmt.Sprintf("[%d] %s %s", a.ID, levelStyle.Render(a.Level), a.Message)
		if a.Acknowledged {
			line = mutedStyle.Render(line + " ✓")
		}
		content += "\n" + line
	}
	return baseStyle.Render(content)
}

func onOffIndicator(v bool) string {
	if v {
		return infoStyle.Render("ON")
	}
	return mutedStyle.Render("OFF")
}
