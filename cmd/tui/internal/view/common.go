package view

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kushtati/kushtati-immo/internal/payment"
)

const dbTimeout = 5 * time.Second

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// DbCtx returns a context with a standard timeout for store operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1E40AF"))
	faintStyle = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	panelStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func stateStyle(s payment.DisplayState) lipgloss.Style {
	switch s {
	case payment.StatePaid:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	case payment.StateOverdue:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	case payment.StateAdvancePayment:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
}
