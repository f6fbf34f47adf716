package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kushtati/kushtati-immo/internal/importer"
	"github.com/kushtati/kushtati-immo/internal/payment"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

// ImportModel loads payment records from a CSV file. Periods already in the
// ledger are skipped.
type ImportModel struct {
	CommonModel
	ledger        *payment.Service
	importService *importer.Service

	state      importState
	filePicker filepicker.Model

	status string
	err    error
}

func NewImportModel(ledger *payment.Service, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		ledger:        ledger,
		importService: impSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Importer un historique" }

func (m ImportModel) ShortHelp() string { return "Esc: retour | Entrée: choisir" }

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.state != importStateImporting {
			return m, Back
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err

		if msg.err == nil {
			m.status = fmt.Sprintf("%d période(s) importée(s).", msg.imported)
			if len(msg.skipped) > 0 {
				m.status += fmt.Sprintf("\nDéjà présentes, ignorées : %s", strings.Join(msg.skipped, ", "))
			}
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if ok, path := m.filePicker.DidSelectFile(msg); ok {
		m.state = importStateImporting
		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) View() string {
	var body string

	switch m.state {
	case importStateFilePick:
		body = "Choisissez un fichier CSV (séparateur « ; »)\n\n" + m.filePicker.View()
	case importStateImporting:
		body = "Import en cours..."
	case importStateResult:
		if m.err != nil {
			body = errorStyle.Render(fmt.Sprintf("Erreur : %v", m.err))
		} else {
			body = okStyle.Render(m.status)
		}
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.Title()),
		"",
		body,
		"",
		faintStyle.Render(m.ShortHelp()),
	))
}

type importResultMsg struct {
	imported int
	skipped  []string
	err      error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		records, err := m.importService.ImportFile(path)
		if err != nil {
			return importResultMsg{err: err}
		}

		result, err := m.ledger.Import(ctx, records)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{imported: len(result.Imported), skipped: result.Skipped}
	}
}
