package api

import (
	"fmt"
	"log/slog"

	statementhandler "github.com/gargnikhil/statement-extractor/internal/domain/statement/handler"
	statementservice "github.com/gargnikhil/statement-extractor/internal/domain/statement/service"
	"github.com/gargnikhil/statement-extractor/internal/sheets"
	"github.com/gargnikhil/statement-extractor/pkg/config"
	"github.com/gargnikhil/statement-extractor/pkg/cron"
	"github.com/gargnikhil/statement-extractor/pkg/storage"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	Staging          *storage.Staging
	SheetsClient     *sheets.Client
	StatementService *statementservice.Service
	StatementHandler *statementhandler.StatementHandler
	Scheduler        *cron.Scheduler
}

// InitDependencies wires the service graph bottom-up.
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	staging, err := storage.NewStaging(cfg.Upload.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to set up upload staging: %w", err)
	}

	sheetsClient := sheets.NewClient(cfg.Sheets.WebhookURL, logger)
	svc := statementservice.NewService(nil, sheetsClient, logger)
	handler := statementhandler.NewStatementHandler(svc, staging, logger)
	scheduler := cron.NewScheduler(staging, cfg.Upload.MaxAge, logger)

	return &Dependencies{
		Config:           cfg,
		Logger:           logger,
		Staging:          staging,
		SheetsClient:     sheetsClient,
		StatementService: svc,
		StatementHandler: handler,
		Scheduler:        scheduler,
	}, nil
}

// Cleanup releases background resources.
func (d *Dependencies) Cleanup() {
	if d.Scheduler != nil {
		<-d.Scheduler.Stop().Done()
	}
}
