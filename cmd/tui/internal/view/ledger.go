package view

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/lease"
	"github.com/kushtati/kushtati-immo/internal/payment"
	"github.com/kushtati/kushtati-immo/internal/payment/flow"
)

// LedgerModel lists the payment records and opens the payment dialog.
type LedgerModel struct {
	CommonModel
	ledger  *payment.Service
	newFlow func() *flow.Flow
	lease   lease.Lease

	table   table.Model
	records []*payment.Record
	summary payment.Summary
	next    *payment.Record
	payment *PaymentModel

	loading bool
	err     error
	status  string
}

func NewLedgerModel(ledger *payment.Service, newFlow func() *flow.Flow, l lease.Lease) LedgerModel {
	columns := []table.Column{
		{Title: "Période", Width: 16},
		{Title: "Montant", Width: 16},
		{Title: "Échéance", Width: 12},
		{Title: "Statut", Width: 18},
		{Title: "Payé le", Width: 12},
		{Title: "Méthode", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return LedgerModel{
		ledger:  ledger,
		newFlow: newFlow,
		lease:   l,
		table:   t,
		loading: true,
	}
}

func (m LedgerModel) Title() string { return "Paiements" }

func (m LedgerModel) ShortHelp() string {
	return "Esc: retour | Entrée/p: payer | r: rafraîchir"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLedgerMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.records = msg.records
		m.summary = msg.summary
		m.next = msg.next
		m.refreshTable()

		return m, nil

	case PaymentClosedMsg:
		m.payment = nil
		m.table.Focus()

		if msg.Settled {
			m.status = "Paiement enregistré."
		}

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-14, 5))
		return m, nil
	}

	if m.payment != nil {
		p, cmd := m.payment.Update(msg)
		m.payment = &p

		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "enter", "p":
			return m.openPayment()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m LedgerModel) openPayment() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.records) {
		return m, nil
	}

	p, err := NewPaymentModel(m.newFlow(), m.lease, m.records[idx])
	if err != nil {
		if errors.Is(err, payment.ErrAlreadyPaid) {
			m.status = fmt.Sprintf("%s est déjà payé.", m.records[idx].Period)
		} else {
			m.status = fmt.Sprintf("Erreur : %v", err)
		}

		return m, nil
	}

	m.status = ""
	m.payment = &p
	m.table.Blur()

	return m, p.Init()
}

func (m LedgerModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Chargement des paiements...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Erreur : %v", m.err)))
	}

	now := m.ledger.Now()

	nextLine := "Tous les loyers exigibles sont réglés."
	if m.next != nil {
		state := payment.Derive(m.next, now)
		nextLine = fmt.Sprintf("Prochaine échéance : %s, %s le %s (%s)",
			m.next.Period,
			format.Amount(m.next.AmountDue),
			format.Date(m.next.DueDate),
			stateStyle(state).Render(state.Label()),
		)
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.lease.Property+" - "+m.lease.Location),
		nextLine,
		fmt.Sprintf("Total payé : %s | Payés : %d | En retard : %d | À venir : %d",
			activeStyle(format.Amount(m.summary.TotalPaid)),
			m.summary.Paid, m.summary.Overdue, m.summary.Pending+m.summary.Advance),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle.Render(m.ShortHelp()),
	)

	if m.payment != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, " ", m.payment.View())
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *LedgerModel) refreshTable() {
	now := m.ledger.Now()

	rows := make([]table.Row, 0, len(m.records))
	for _, r := range m.records {
		paidOn := "-"
		if r.PaidDate != nil {
			paidOn = format.Date(*r.PaidDate)
		}

		method := "-"
		if r.Method != "" {
			method = r.Method.Label()
		}

		rows = append(rows, table.Row{
			r.Period,
			format.Amount(r.AmountDue),
			format.Date(r.DueDate),
			payment.Derive(r, now).Label(),
			paidOn,
			method,
		})
	}

	m.table.SetRows(rows)
}

type loadLedgerMsg struct {
	records []*payment.Record
	summary payment.Summary
	next    *payment.Record
	err     error
}

func (m LedgerModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		records, err := m.ledger.List(ctx)
		if err != nil {
			return loadLedgerMsg{err: err}
		}

		now := m.ledger.Now()

		next, err := m.ledger.NextDue(ctx, now)
		if err != nil {
			return loadLedgerMsg{err: err}
		}

		return loadLedgerMsg{records: records, summary: payment.Summarize(records, now), next: next}
	}
}
