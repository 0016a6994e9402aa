package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginModel is the sign-in form. It owns only the field state; submitting
// goes through the injected Login command.
type loginModel struct {
	username textinput.Model
	password textinput.Model
	focus    int
	err      string
	busy     bool
}

func newLoginModel() loginModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword

	return loginModel{username: username, password: password}
}

func (l *loginModel) focusFirst() tea.Cmd {
	l.focus = 0
	l.password.Blur()
	return l.username.Focus()
}

func (a App) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "tab", "shift+tab", "up", "down":
		if a.login.focus == 0 {
			a.login.focus = 1
			a.login.username.Blur()
			return a, a.login.password.Focus()
		}
		a.login.focus = 0
		a.login.password.Blur()
		return a, a.login.username.Focus()

	case "enter":
		if a.login.busy {
			return a, nil
		}
		user := strings.TrimSpace(a.login.username.Value())
		pass := a.login.password.Value()
		if user == "" || pass == "" {
			a.login.err = "Both fields are required."
			return a, nil
		}
		if a.cmds.Login == nil {
			return a, nil
		}
		a.login.busy = true
		a.login.err = ""
		return a, tea.Batch(a.cmds.Login(user, pass), a.spin.Tick)
	}

	var cmd tea.Cmd
	if a.login.focus == 0 {
		a.login.username, cmd = a.login.username.Update(msg)
	} else {
		a.login.password, cmd = a.login.password.Update(msg)
	}
	return a, cmd
}

func (l loginModel) view(spin string) string {
	var b strings.Builder

	b.WriteString(FormHeading.Render("Rare Pen Collector · Sign In"))
	b.WriteString("\n\n")
	b.WriteString(FormLabel.Render("Username") + "\n")
	b.WriteString(l.username.View() + "\n\n")
	b.WriteString(FormLabel.Render("Password") + "\n")
	b.WriteString(l.password.View() + "\n\n")

	if l.busy {
		b.WriteString(spin + " signing in...\n")
	}
	if l.err != "" {
		b.WriteString(FormError.Render(l.err) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(StatusBarText.Render("tab switches fields · enter submits · ctrl+c quits"))
	return b.String()
}
