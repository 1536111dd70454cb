package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Naresh-M-tech/keralalt-line/internal/pkg/application/session"
)

type loginSubview int

const (
	subviewSignIn loginSubview = iota
	subviewSignUp
	subviewForgot
	subviewPostSignup
)

// loginModel is the unauthenticated screen: sign in, sign up and password
// reset, with an operator/customer tab that only changes the copy, never
// the privileges. Roles come from the profile lookup after sign-in.
type loginModel struct {
	subview     loginSubview
	operatorTab bool

	email    textinput.Model
	password textinput.Model
	focused  int

	busy    bool
	authErr string

	// justVerified shows the one-shot banner after an email confirmation
	// forced the session back out.
	justVerified bool
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return loginModel{
		email:       email,
		password:    password,
		operatorTab: true,
	}
}

func (m loginModel) update(ctx context.Context, store session.Store, msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.focused = (m.focused + 1) % m.fieldCount()
			m.syncFocus()
			return m, nil

		case "ctrl+o":
			m.operatorTab = !m.operatorTab
			return m, nil

		case "ctrl+s":
			m.switchSubview(subviewSignUp)
			return m, nil

		case "ctrl+f":
			m.switchSubview(subviewForgot)
			return m, nil

		case "esc":
			m.switchSubview(subviewSignIn)
			return m, nil

		case "enter":
			return m.submit(ctx, store)
		}

	case authDoneMsg:
		m.busy = false

		if msg.err != nil {
			m.authErr = authErrorText(msg.err)
			return m, nil
		}

		m.authErr = ""

		switch msg.op {
		case "signup":
			m.switchSubview(subviewPostSignup)
		case "recover":
			m.switchSubview(subviewSignIn)
		}
		return m, nil
	}

	var cmd tea.Cmd
	var cmds []tea.Cmd

	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m loginModel) submit(ctx context.Context, store session.Store) (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()

	switch m.subview {
	case subviewSignIn:
		m.busy = true
		m.justVerified = false
		return m, func() tea.Msg {
			return authDoneMsg{op: "signin", err: store.SignIn(ctx, email, password)}
		}

	case subviewSignUp:
		m.busy = true
		return m, func() tea.Msg {
			return authDoneMsg{op: "signup", err: store.SignUp(ctx, email, password)}
		}

	case subviewForgot:
		m.busy = true
		return m, func() tea.Msg {
			return authDoneMsg{op: "recover", err: store.RequestPasswordReset(ctx, email)}
		}

	case subviewPostSignup:
		m.switchSubview(subviewSignIn)
	}

	return m, nil
}

func (m *loginModel) switchSubview(v loginSubview) {
	m.subview = v
	m.authErr = ""
	m.focused = 0
	m.password.SetValue("")
	m.syncFocus()
}

func (m *loginModel) fieldCount() int {
	if m.subview == subviewForgot {
		return 1
	}
	return 2
}

func (m *loginModel) syncFocus() {
	m.email.Blur()
	m.password.Blur()

	if m.focused == 0 {
		m.email.Focus()
	} else {
		m.password.Focus()
	}
}

func (m loginModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("KSEBL Grid Intelligence Platform"))
	b.WriteString("\n\n")

	tab := "Customer"
	if m.operatorTab {
		tab = "Grid Operator"
	}
	b.WriteString(mutedStyle.Render("[" + tab + "]  ctrl+o to switch"))
	b.WriteString("\n\n")

	if m.justVerified {
		b.WriteString(bannerStyle.Render("Email verified. Please sign in."))
		b.WriteString("\n\n")
	}

	switch m.subview {
	case subviewSignIn:
		b.WriteString("Sign in\n\n")
		b.WriteString(m.email.View())
		b.WriteString("\n")
		b.WriteString(m.password.View())
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("enter sign in · ctrl+s sign up · ctrl+f forgot password"))

	case subviewSignUp:
		b.WriteString("Create account\n\n")
		b.WriteString(m.email.View())
		b.WriteString("\n")
		b.WriteString(m.password.View())
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("enter sign up · esc back"))

	case subviewForgot:
		b.WriteString("Reset password\n\n")
		b.WriteString(m.email.View())
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("enter send reset link · esc back"))

	case subviewPostSignup:
		b.WriteString("Almost there\n\n")
		b.WriteString("Check your inbox and follow the confirmation link,\nthen sign in.")
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("enter back to sign in"))
	}

	if m.busy {
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("working..."))
	}

	if m.authErr != "" {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.authErr))
	}

	return b.String()
}

func authErrorText(err error) string {
	return "Authentication failed: " + err.Error()
}
