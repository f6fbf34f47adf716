package view

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/lease"
	"github.com/kushtati/kushtati-immo/internal/payment"
	"github.com/kushtati/kushtati-immo/internal/payment/flow"
)

const receiptDir = "./recus"

type paymentState int

const (
	paymentStateMethod paymentState = iota
	paymentStateProcessing
	paymentStateResult
)

// PaymentClosedMsg is sent when the payment dialog goes away.
type PaymentClosedMsg struct {
	Settled bool
}

type paymentResultMsg struct {
	flow   *flow.Flow
	result flow.Result
}

type receiptSavedMsg struct {
	path string
	err  error
}

// PaymentModel is the dialog that pays one record.
type PaymentModel struct {
	flow   *flow.Flow
	lease  lease.Lease
	record *payment.Record

	state   paymentState
	form    *huh.Form
	method  *payment.Method
	spinner spinner.Model
	result  flow.Result
	status  string
}

func NewPaymentModel(f *flow.Flow, l lease.Lease, rec *payment.Record) (PaymentModel, error) {
	if err := f.Select(rec); err != nil {
		return PaymentModel{}, err
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := PaymentModel{
		flow:    f,
		lease:   l,
		record:  rec,
		method:  new(payment.Method),
		spinner: s,
	}
	m.form = m.buildForm()

	return m, nil
}

func (m PaymentModel) buildForm() *huh.Form {
	options := make([]huh.Option[payment.Method], 0, len(payment.Methods))
	for _, pm := range payment.Methods {
		options = append(options, huh.NewOption(pm.Label(), pm))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[payment.Method]().
				Key("method").
				Title("Moyen de paiement").
				Options(options...).
				Value(m.method),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m PaymentModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m PaymentModel) Update(msg tea.Msg) (PaymentModel, tea.Cmd) {
	switch msg := msg.(type) {
	case paymentResultMsg:
		if msg.flow != m.flow {
			return m, nil
		}

		m.result = msg.result
		m.state = paymentStateResult

		return m, nil

	case receiptSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Erreur : %v", msg.err)
		} else {
			m.status = "Reçu enregistré : " + msg.path
		}

		return m, nil
	}

	switch m.state {
	case paymentStateMethod:
		return m.updateMethod(msg)
	case paymentStateProcessing:
		return m.updateProcessing(msg)
	case paymentStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m PaymentModel) updateMethod(msg tea.Msg) (PaymentModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		_ = m.flow.Cancel()
		return m, closePayment(false)
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m.submit()
}

// submit starts the payment, or asks again for a method when none was picked.
func (m PaymentModel) submit() (PaymentModel, tea.Cmd) {
	if *m.method != "" {
		if err := m.flow.ChooseMethod(*m.method); err != nil {
			m.status = fmt.Sprintf("Erreur : %v", err)
			return m, nil
		}
	}

	results, err := m.flow.Submit(context.Background())
	if errors.Is(err, flow.ErrNoMethodSelected) {
		m.status = "Veuillez choisir un moyen de paiement."
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	if err != nil {
		m.status = fmt.Sprintf("Erreur : %v", err)
		return m, nil
	}

	m.state = paymentStateProcessing
	m.status = ""

	return m, tea.Batch(m.spinner.Tick, waitForResult(m.flow, results))
}

func (m PaymentModel) updateProcessing(msg tea.Msg) (PaymentModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		if err := m.flow.Cancel(); err != nil {
			m.status = "Le paiement est en cours d'enregistrement, veuillez patienter."
			return m, nil
		}

		return m, closePayment(false)
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m PaymentModel) updateResult(msg tea.Msg) (PaymentModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "enter":
		settled := m.result.Err == nil
		if settled {
			_ = m.flow.Reset()
		}

		return m, closePayment(settled)
	case "s":
		if m.result.Receipt == nil {
			return m, nil
		}

		return m, saveReceipt(m.result)
	}

	return m, nil
}

func (m PaymentModel) View() string {
	header := titleStyle.Render(fmt.Sprintf("Paiement - %s", m.record.Period))
	amount := fmt.Sprintf("Montant : %s\nÉchéance : %s", format.Amount(m.record.AmountDue), format.Date(m.record.DueDate))

	var body string

	switch m.state {
	case paymentStateMethod:
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.form.View(),
			"",
			faintStyle.Render(flow.Instructions(*m.method, m.lease)),
			"",
			faintStyle.Render("Entrée : payer | Esc : annuler"),
		)
	case paymentStateProcessing:
		body = fmt.Sprintf("%s Traitement du paiement par %s...\n\n%s",
			m.spinner.View(), m.method.Label(), faintStyle.Render("Esc : annuler"))
	case paymentStateResult:
		body = m.viewResult()
	}

	if m.status != "" {
		body += "\n\n" + faintStyle.Render(m.status)
	}

	return panelStyle.Width(64).Render(lipgloss.JoinVertical(lipgloss.Left, header, "", amount, "", body))
}

func (m PaymentModel) viewResult() string {
	if m.result.Err != nil {
		return errorStyle.Render(fmt.Sprintf("Erreur : %v", m.result.Err)) + "\n\n" + faintStyle.Render("Entrée : fermer")
	}

	lines := []string{okStyle.Render(m.result.Message)}

	if m.result.AlreadyPaid {
		lines = append(lines, "", faintStyle.Render("Cette période était déjà réglée."))
	}

	if m.result.RedirectURL != "" {
		lines = append(lines, "", "Page de paiement : "+m.result.RedirectURL)
	}

	help := "Entrée : fermer"
	if m.result.Receipt != nil {
		help = "s : enregistrer le reçu | " + help
	}

	lines = append(lines, "", faintStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func closePayment(settled bool) tea.Cmd {
	return func() tea.Msg { return PaymentClosedMsg{Settled: settled} }
}

func waitForResult(f *flow.Flow, results <-chan flow.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			res = flow.Result{Err: errors.New("payment ended without a result")}
		}

		return paymentResultMsg{flow: f, result: res}
	}
}

func saveReceipt(res flow.Result) tea.Cmd {
	return func() tea.Msg {
		if err := os.MkdirAll(receiptDir, 0o755); err != nil {
			return receiptSavedMsg{err: err}
		}

		path := filepath.Join(receiptDir, res.Receipt.Name)
		if err := os.WriteFile(path, res.Receipt.Data, 0o644); err != nil {
			return receiptSavedMsg{err: err}
		}

		return receiptSavedMsg{path: path}
	}
}
