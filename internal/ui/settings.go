package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// settingsModel is the credential-change form. A successful change clears
// the session server-side, so the flow always ends back at sign-in.
type settingsModel struct {
	newUsername textinput.Model
	newPassword textinput.Model
	confirm     textinput.Model
	focus       int
	err         string
	busy        bool
}

func newSettingsModel() settingsModel {
	newUsername := textinput.New()
	newUsername.Placeholder = "new username"
	newUsername.CharLimit = 64

	newPassword := textinput.New()
	newPassword.Placeholder = "new password"
	newPassword.CharLimit = 64
	newPassword.EchoMode = textinput.EchoPassword

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.CharLimit = 64
	confirm.EchoMode = textinput.EchoPassword

	return settingsModel{newUsername: newUsername, newPassword: newPassword, confirm: confirm}
}

func (s *settingsModel) focusFirst() tea.Cmd {
	s.focus = 0
	s.newPassword.Blur()
	s.confirm.Blur()
	return s.newUsername.Focus()
}

func (s *settingsModel) fields() []*textinput.Model {
	return []*textinput.Model{&s.newUsername, &s.newPassword, &s.confirm}
}

func (s *settingsModel) setFocus(i int) tea.Cmd {
	fields := s.fields()
	s.focus = (i + len(fields)) % len(fields)
	var cmd tea.Cmd
	for j, f := range fields {
		if j == s.focus {
			cmd = f.Focus()
		} else {
			f.Blur()
		}
	}
	return cmd
}

func (a App) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "esc":
		a.mode = modeDashboard
		return a, nil

	case "tab", "down":
		return a, a.settings.setFocus(a.settings.focus + 1)

	case "shift+tab", "up":
		return a, a.settings.setFocus(a.settings.focus - 1)

	case "enter":
		if a.settings.busy {
			return a, nil
		}
		user := strings.TrimSpace(a.settings.newUsername.Value())
		pass := a.settings.newPassword.Value()
		confirm := a.settings.confirm.Value()
		switch {
		case user == "" || pass == "":
			a.settings.err = "Username and password are required."
			return a, nil
		case pass != confirm:
			a.settings.err = "Passwords do not match."
			return a, nil
		}
		if a.cmds.ChangeCreds == nil {
			return a, nil
		}
		a.settings.busy = true
		a.settings.err = ""
		return a, tea.Batch(a.cmds.ChangeCreds(user, pass), a.spin.Tick)
	}

	var cmd tea.Cmd
	f := a.settings.fields()[a.settings.focus]
	*f, cmd = f.Update(msg)
	return a, cmd
}

func (s settingsModel) view(spin string) string {
	var b strings.Builder

	b.WriteString(FormHeading.Render("Settings · Change Credentials"))
	b.WriteString("\n\n")
	b.WriteString(FormLabel.Render("New username") + "\n")
	b.WriteString(s.newUsername.View() + "\n\n")
	b.WriteString(FormLabel.Render("New password") + "\n")
	b.WriteString(s.newPassword.View() + "\n\n")
	b.WriteString(FormLabel.Render("Confirm password") + "\n")
	b.WriteString(s.confirm.View() + "\n\n")

	if s.busy {
		b.WriteString(spin + " updating...\n")
	}
	if s.err != "" {
		b.WriteString(FormError.Render(s.err) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(StatusBarText.Render("changing credentials signs you out everywhere"))
	b.WriteString("\n")
	b.WriteString(StatusBarText.Render("tab switches fields · enter submits · esc cancels"))
	return b.String()
}
