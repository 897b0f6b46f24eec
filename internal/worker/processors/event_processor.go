package processors

import (
	"crickstore/internal/config"
	"crickstore/internal/events"
	"crickstore/internal/logger"
)

// EventProcessor tallies migration lifecycle events so an operator tailing
// the worker sees a running account of the migration without hitting the
// API.
type EventProcessor struct {
	config *config.Config
	logger *logger.Logger

	categories int
	products   int
}

func NewEventProcessor(cfg *config.Config, logger *logger.Logger) *EventProcessor {
	return &EventProcessor{
		config: cfg,
		logger: logger,
	}
}

func (ep *EventProcessor) Process(event events.Event) error {
	switch event.Type {
	case "migration.started":
		ep.categories = 0
		ep.products = 0
		ep.logger.Info("Migration started: %v categories, %v products queued", event.Data["categories"], event.Data["products"])

	case "category.imported":
		ep.categories++
		ep.logger.Debug("Category imported: %v", event.Data["name"])

	case "product.imported":
		ep.products++
		ep.logger.Debug("Product imported: %v", event.Data["name"])

	case "migration.completed":
		ep.logger.Info("Migration completed: %d categories and %d products seen, source reported %v errors",
			ep.categories, ep.products, event.Data["errors"])

	case "migration.failed":
		ep.logger.Error("Migration failed: %v", event.Data["message"])

	default:
		ep.logger.Debug("Ignoring event type %s", event.Type)
	}

	return nil
}
