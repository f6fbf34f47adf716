package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/kushtati/kushtati-immo/cmd/tui/internal/view"
	"github.com/kushtati/kushtati-immo/internal/advisor"
	"github.com/kushtati/kushtati-immo/internal/config"
	"github.com/kushtati/kushtati-immo/internal/database"
	"github.com/kushtati/kushtati-immo/internal/document"
	"github.com/kushtati/kushtati-immo/internal/importer"
	"github.com/kushtati/kushtati-immo/internal/lease"
	"github.com/kushtati/kushtati-immo/internal/maintenance"
	"github.com/kushtati/kushtati-immo/internal/payment"
	"github.com/kushtati/kushtati-immo/internal/payment/flow"
	"github.com/kushtati/kushtati-immo/internal/payment/store"
	"github.com/kushtati/kushtati-immo/internal/portfolio"
)

type model struct {
	ledger        *payment.Service
	requests      *maintenance.Service
	works         *maintenance.Service
	importService *importer.Service
	renderer      *document.Renderer
	lease         lease.Lease
	newFlow       func() *flow.Flow

	currentView View

	ledgerView      view.LedgerModel
	maintenanceView view.MaintenanceModel
	advisorView     view.AdvisorModel
	exportView      view.ExportModel
	importView      view.ImportModel
}

type View int

const (
	ViewMenu        View = 0
	ViewLedger      View = 1
	ViewMaintenance View = 2
	ViewAdvisor     View = 3
	ViewExport      View = 4
	ViewImport      View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var repo payment.Repository = store.NewMemory()

	if cfg.Ledger.Store == config.LedgerStorePostgres {
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}

		repo = store.New(db)
	}

	ledger := payment.NewService(repo, time.Now)
	impSvc := importer.NewService()

	existing, err := ledger.List(ctx)
	if err != nil {
		slog.Error("failed to read ledger", "error", err)
		os.Exit(1)
	}

	if len(existing) == 0 {
		records := payment.DefaultRecords()

		if cfg.Ledger.SeedFile != "" {
			records, err = impSvc.ImportFile(cfg.Ledger.SeedFile)
			if err != nil {
				slog.Error("failed to import seed file", "error", err)
				os.Exit(1)
			}
		}

		if err := ledger.Seed(ctx, records); err != nil {
			slog.Error("failed to seed ledger", "error", err)
			os.Exit(1)
		}
	}

	requests := maintenance.NewService(maintenance.NewMemory(), time.Now)
	works := maintenance.NewService(maintenance.NewMemory(), time.Now)

	if err := requests.Seed(ctx, maintenance.TenantRequests()); err != nil {
		slog.Error("failed to seed maintenance requests", "error", err)
		os.Exit(1)
	}

	if err := works.Seed(ctx, maintenance.OwnerInterventions()); err != nil {
		slog.Error("failed to seed interventions", "error", err)
		os.Exit(1)
	}

	var gen advisor.Generator = advisor.Unconfigured{}
	if g, err := advisor.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model); err == nil {
		gen = g
	}

	l := lease.Default()
	renderer := document.NewRenderer(l, time.Now)
	delay := cfg.Payment.ProcessingDelay

	newFlow := func() *flow.Flow {
		return flow.New(flow.Deps{
			Ledger:    ledger,
			Renderer:  renderer,
			Confirmer: flow.DelayConfirmer{Delay: delay},
			Navigator: view.Browser{},
			Lease:     l,
		})
	}

	advisorSvc := advisor.NewService(gen)

	return model{
		ledger:          ledger,
		requests:        requests,
		works:           works,
		importService:   impSvc,
		renderer:        renderer,
		lease:           l,
		newFlow:         newFlow,
		currentView:     ViewMenu,
		ledgerView:      view.NewLedgerModel(ledger, newFlow, l),
		maintenanceView: view.NewMaintenanceModel(requests),
		advisorView:     view.NewAdvisorModel(advisorSvc),
		exportView:      view.NewExportModel(ledger, works, portfolio.DefaultProperties, renderer),
		importView:      view.NewImportModel(ledger, impSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewLedger
				m.ledgerView = view.NewLedgerModel(m.ledger, m.newFlow, m.lease)

				return m, m.ledgerView.Init()
			case "2":
				m.currentView = ViewMaintenance
				m.maintenanceView = view.NewMaintenanceModel(m.requests)

				return m, m.maintenanceView.Init()
			case "3":
				m.currentView = ViewAdvisor
				return m, m.advisorView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.ledger, m.works, portfolio.DefaultProperties, m.renderer)

				return m, m.exportView.Init()
			case "5":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.ledger, m.importService)

				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewMaintenance:
		var newModel tea.Model
		newModel, cmd = m.maintenanceView.Update(msg)
		m.maintenanceView = newModel.(view.MaintenanceModel)
	case ViewAdvisor:
		var newModel tea.Model
		newModel, cmd = m.advisorView.Update(msg)
		m.advisorView = newModel.(view.AdvisorModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Kushtati Immo\n\n" +
				"1. Paiements\n" +
				"2. Maintenance\n" +
				"3. Assistant IA\n" +
				"4. Exporter des documents\n" +
				"5. Importer un historique\n\n" +
				"q. Quitter",
		)
	case ViewLedger:
		return m.ledgerView.View()
	case ViewMaintenance:
		return m.maintenanceView.View()
	case ViewAdvisor:
		return m.advisorView.View()
	case ViewExport:
		return m.exportView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
