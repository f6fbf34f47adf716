package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kushtati/kushtati-immo/internal/document"
	"github.com/kushtati/kushtati-immo/internal/maintenance"
	"github.com/kushtati/kushtati-immo/internal/payment"
	"github.com/kushtati/kushtati-immo/internal/portfolio"
)

const exportTimeout = 2 * time.Minute

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type documentKind string

const (
	kindHistoryPDF    documentKind = "history_pdf"
	kindHistorySheet  documentKind = "history_xlsx"
	kindReceipts      documentKind = "receipts"
	kindMonthlyReport documentKind = "monthly_report"
	kindTax           documentKind = "tax"
)

type exportChoice struct {
	kind documentKind
	path string
}

type ExportModel struct {
	CommonModel
	ledger     *payment.Service
	works      *maintenance.Service
	properties func() []portfolio.Property
	renderer   *document.Renderer

	state   exportState
	form    *huh.Form
	choice  *exportChoice
	spinner spinner.Model
	written []string
	err     error
}

func NewExportModel(ledger *payment.Service, works *maintenance.Service, properties func() []portfolio.Property, renderer *document.Renderer) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		ledger:     ledger,
		works:      works,
		properties: properties,
		renderer:   renderer,
		choice:     &exportChoice{kind: kindHistoryPDF, path: "./exports"},
		spinner:    s,
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) Title() string { return "Exporter des documents" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: retour au menu"
	case exportStateExporting:
		return "Export en cours..."
	}

	return "Esc: retour | Entrée: confirmer"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(*m.choice))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.written = result.paths

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[documentKind]().
				Key("kind").
				Title("Document").
				Options(
					huh.NewOption("Historique des paiements (PDF)", kindHistoryPDF),
					huh.NewOption("Historique des paiements (Excel)", kindHistorySheet),
					huh.NewOption("Tous les reçus (ZIP)", kindReceipts),
					huh.NewOption("Rapport mensuel propriétaire (PDF)", kindMonthlyReport),
					huh.NewOption("Déclaration fiscale de l'année (PDF)", kindTax),
				).
				Value(&m.choice.kind),
			huh.NewInput().
				Key("path").
				Title("Dossier de sortie").
				Description("Le dossier sera créé s'il n'existe pas").
				Placeholder("./exports").
				Value(&m.choice.path),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Génération du document...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Erreur : %v", m.err)))
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			okStyle.Render("Export terminé !"),
			"",
			strings.Join(m.written, "\n"),
		),
	)
}

type exportResultMsg struct {
	paths []string
	err   error
}

func (m ExportModel) runExportCmd(c exportChoice) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		a, err := m.render(ctx, c.kind)
		if err != nil {
			return exportResultMsg{err: err}
		}

		dir := c.path
		if strings.TrimSpace(dir) == "" {
			dir = "./exports"
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportResultMsg{err: fmt.Errorf("creating output directory: %w", err)}
		}

		path := filepath.Join(dir, a.Name)
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return exportResultMsg{err: fmt.Errorf("writing %s: %w", a.Name, err)}
		}

		return exportResultMsg{paths: []string{path}}
	}
}

func (m ExportModel) render(ctx context.Context, kind documentKind) (*document.Artifact, error) {
	switch kind {
	case kindMonthlyReport, kindTax:
		works, err := m.works.List(ctx)
		if err != nil {
			return nil, err
		}

		now := m.ledger.Now()
		if kind == kindTax {
			return m.renderer.TaxDeclaration(portfolio.BuildTaxDeclaration(m.properties(), works, now.Year()))
		}

		return m.renderer.MonthlyReport(portfolio.BuildMonthlyReport(m.properties(), works, now))
	}

	records, err := m.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	switch kind {
	case kindHistorySheet:
		return m.renderer.HistorySheet(records)
	case kindReceipts:
		return m.renderer.Bundle(records)
	}

	return m.renderer.PaymentHistory(records)
}
