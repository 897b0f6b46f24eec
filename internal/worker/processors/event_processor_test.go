package processors

import (
	"testing"

	"crickstore/internal/config"
	"crickstore/internal/events"
	"crickstore/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessTalliesImports(t *testing.T) {
	ep := NewEventProcessor(&config.Config{}, logger.New("error"))

	sequence := []events.Event{
		{Type: "migration.started", Data: map[string]any{"categories": 2, "products": 3}},
		{Type: "category.imported", Data: map[string]any{"name": "Bats"}},
		{Type: "category.imported", Data: map[string]any{"name": "Balls"}},
		{Type: "product.imported", Data: map[string]any{"name": "SG Test Bat"}},
		{Type: "migration.completed", Data: map[string]any{"errors": 0}},
	}
	for _, event := range sequence {
		require.NoError(t, ep.Process(event))
	}

	assert.Equal(t, 2, ep.categories)
	assert.Equal(t, 1, ep.products)
}

func TestProcessResetsCountsOnNewRun(t *testing.T) {
	ep := NewEventProcessor(&config.Config{}, logger.New("error"))

	require.NoError(t, ep.Process(events.Event{Type: "product.imported", Data: map[string]any{"name": "Kookaburra Kahuna"}}))
	require.NoError(t, ep.Process(events.Event{Type: "migration.started", Data: map[string]any{}}))

	assert.Equal(t, 0, ep.products)
}

func TestProcessIgnoresUnknownEvents(t *testing.T) {
	ep := NewEventProcessor(&config.Config{}, logger.New("error"))

	assert.NoError(t, ep.Process(events.Event{Type: "something.else"}))
}
