package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginModel struct {
	title     string
	inputs    []textinput.Model
	focused   int
	submitted bool
	quitting  bool
}

// RunLoginForm prompts for a username and password. ok is false when the
// user aborted the form.
func RunLoginForm(title string) (username, password string, ok bool) {
	m := initialLoginModel(title)

	program := tea.NewProgram(m)
	finalModel, err := program.Run()
	if err != nil {
		fmt.Printf("Error running form: %v", err)
		os.Exit(1)
	}

	final, isLogin := finalModel.(loginModel)
	if !isLogin || !final.submitted {
		return "", "", false
	}
	return final.inputs[0].Value(), final.inputs[1].Value(), true
}

func initialLoginModel(title string) loginModel {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Width = 30
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 64
	pass.Width = 30
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	return loginModel{
		title:  title,
		inputs: []textinput.Model{user, pass},
	}
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
			m.focused = (m.focused + 1) % len(m.inputs)
			for i := range m.inputs {
				if i == m.focused {
					m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, nil
		case tea.KeyEnter:
			if m.focused < len(m.inputs)-1 {
				m.focused++
				m.inputs[m.focused].Focus()
				m.inputs[m.focused-1].Blur()
				return m, nil
			}
			if m.inputs[0].Value() != "" && m.inputs[1].Value() != "" {
				m.submitted = true
				return m, tea.Quit
			}
		}
	}

	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m loginModel) View() string {
	if m.quitting || m.submitted {
		return ""
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		cardTitleStyle.Render(m.title),
		"",
		"Username: "+m.inputs[0].View(),
		"Password: "+m.inputs[1].View(),
		"",
		descStyle.Render("enter: submit • tab: next field • esc: cancel"),
	)

	return baseStyle.Render(form) + "\n"
}
