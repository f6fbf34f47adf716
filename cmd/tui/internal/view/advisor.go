package view

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kushtati/kushtati-immo/internal/advisor"
)

const (
	advisorTimeout = 30 * time.Second
	greeting       = "Bonjour ! Je suis Kushtati AI. Comment puis-je vous aider dans votre projet immobilier à Conakry ?"
)

var (
	userStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	modelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1E40AF")).Bold(true)
)

type AdvisorModel struct {
	CommonModel
	svc *advisor.Service

	input   textinput.Model
	spinner spinner.Model
	history []advisor.Turn
	waiting bool
}

func NewAdvisorModel(svc *advisor.Service) AdvisorModel {
	ti := textinput.New()
	ti.Placeholder = "Posez votre question..."
	ti.CharLimit = 2000
	ti.Width = 70
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return AdvisorModel{
		svc:     svc,
		input:   ti,
		spinner: s,
		history: []advisor.Turn{{Role: advisor.RoleModel, Text: greeting}},
	}
}

func (m AdvisorModel) Title() string { return "Assistant IA" }

func (m AdvisorModel) ShortHelp() string { return "Entrée: envoyer | Esc: retour" }

func (m AdvisorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m AdvisorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case adviceMsg:
		m.waiting = false
		m.history = append(m.history, advisor.Turn{Role: advisor.RoleModel, Text: msg.reply})

		return m, textinput.Blink

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyEnter:
			return m.send()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m AdvisorModel) send() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(m.input.Value())
	if question == "" || m.waiting {
		return m, nil
	}

	// The greeting is local and never sent as context.
	history := append([]advisor.Turn(nil), m.history[1:]...)

	m.history = append(m.history, advisor.Turn{Role: advisor.RoleUser, Text: question})
	m.input.Reset()
	m.waiting = true

	return m, tea.Batch(m.spinner.Tick, m.askCmd(question, history))
}

func (m AdvisorModel) View() string {
	var sb strings.Builder

	for _, t := range m.history {
		if t.Role == advisor.RoleUser {
			sb.WriteString(userStyle.Render("Vous") + "\n")
		} else {
			sb.WriteString(modelStyle.Render("Kushtati AI") + "\n")
		}

		sb.WriteString(lipgloss.NewStyle().Width(76).Render(t.Text) + "\n\n")
	}

	if m.waiting {
		sb.WriteString(m.spinner.View() + " Kushtati AI réfléchit...\n\n")
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Assistant IA"),
		"",
		sb.String(),
		m.input.View(),
		faintStyle.Render(m.ShortHelp()),
	))
}

type adviceMsg struct {
	reply string
}

func (m AdvisorModel) askCmd(question string, history []advisor.Turn) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), advisorTimeout)
		defer cancel()

		return adviceMsg{reply: m.svc.Advise(ctx, question, history)}
	}
}
