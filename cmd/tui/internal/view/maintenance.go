package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/maintenance"
)

type maintenanceState int

const (
	maintenanceStateBrowse maintenanceState = iota
	maintenanceStateCreate
)

// newRequest holds the form bindings. Keep it behind a pointer, the model is
// copied on every update.
type newRequest struct {
	title       string
	description string
	priority    maintenance.Priority
}

type MaintenanceModel struct {
	CommonModel
	svc *maintenance.Service

	state    maintenanceState
	table    table.Model
	requests []*maintenance.Request
	pending  int
	form     *huh.Form
	draft    *newRequest

	err    error
	status string
}

func NewMaintenanceModel(svc *maintenance.Service) MaintenanceModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Titre", Width: 32},
		{Title: "Priorité", Width: 10},
		{Title: "Statut", Width: 12},
		{Title: "Coût", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	return MaintenanceModel{svc: svc, table: t}
}

func (m MaintenanceModel) Title() string { return "Maintenance" }

func (m MaintenanceModel) ShortHelp() string {
	if m.state == maintenanceStateCreate {
		return "Naviguer dans le formulaire | Esc: annuler"
	}

	return "Esc: retour | n: nouvelle demande | s: changer le statut"
}

func (m MaintenanceModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m MaintenanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadMaintenanceMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.requests = msg.requests
		m.refreshTable()

		return m, nil

	case maintenanceSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Erreur : %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = maintenanceStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()
	}

	if m.state == maintenanceStateCreate {
		return m.updateCreate(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "n":
			return m.enterCreate()
		case "s":
			return m, m.cycleStatusCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m MaintenanceModel) enterCreate() (tea.Model, tea.Cmd) {
	m.draft = &newRequest{priority: maintenance.PriorityMedium}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Titre").
				Value(&m.draft.title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("le titre est obligatoire")
					}

					return nil
				}),
			huh.NewText().
				Key("description").
				Title("Description").
				Value(&m.draft.description),
			huh.NewSelect[maintenance.Priority]().
				Key("priority").
				Title("Priorité").
				Options(
					huh.NewOption("Haute", maintenance.PriorityHigh),
					huh.NewOption("Moyenne", maintenance.PriorityMedium),
					huh.NewOption("Basse", maintenance.PriorityLow),
				).
				Value(&m.draft.priority),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = maintenanceStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m MaintenanceModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = maintenanceStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd(*m.draft)
}

func (m MaintenanceModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Erreur : %v", m.err)))
	}

	header := fmt.Sprintf("Demandes en cours : %s | Coût total : %s",
		activeStyle(fmt.Sprint(m.pending)),
		format.Amount(maintenance.Total(m.requests)),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Maintenance"),
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle.Render(m.ShortHelp()),
	)

	if m.state == maintenanceStateCreate && m.form != nil {
		panel := panelStyle.Width(54).Render("Nouvelle demande\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *MaintenanceModel) refreshTable() {
	m.pending = 0

	rows := make([]table.Row, 0, len(m.requests))
	for _, r := range m.requests {
		if r.Open() {
			m.pending++
		}

		cost := "-"
		if r.Cost > 0 {
			cost = format.Amount(r.Cost)
		}

		rows = append(rows, table.Row{
			format.Date(r.Date),
			r.Title,
			string(r.Priority),
			r.Status.Label(),
			cost,
		})
	}

	m.table.SetRows(rows)
}

// nextStatus cycles pending -> in progress -> resolved -> pending.
func nextStatus(s maintenance.Status) maintenance.Status {
	switch s {
	case maintenance.StatusPending:
		return maintenance.StatusInProgress
	case maintenance.StatusInProgress:
		return maintenance.StatusResolved
	}

	return maintenance.StatusPending
}

type loadMaintenanceMsg struct {
	requests []*maintenance.Request
	err      error
}

type maintenanceSavedMsg struct {
	status string
	err    error
}

func (m MaintenanceModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		requests, err := m.svc.List(ctx)

		return loadMaintenanceMsg{requests: requests, err: err}
	}
}

func (m MaintenanceModel) createCmd(d newRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		r, err := m.svc.Create(ctx, maintenance.CreateParams{
			Title:       d.title,
			Description: d.description,
			Priority:    d.priority,
		})
		if err != nil {
			return maintenanceSavedMsg{err: err}
		}

		return maintenanceSavedMsg{status: fmt.Sprintf("Demande « %s » envoyée.", r.Title)}
	}
}

func (m MaintenanceModel) cycleStatusCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.requests) {
		return nil
	}

	req := m.requests[idx]
	status := nextStatus(req.Status)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.svc.UpdateStatus(ctx, req.ID, status); err != nil {
			return maintenanceSavedMsg{err: err}
		}

		return maintenanceSavedMsg{status: fmt.Sprintf("%s : %s", req.Title, status.Label())}
	}
}
