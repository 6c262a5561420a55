package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigatorSelected(t *testing.T) {
	backend := newFakeBackend(tablePage())
	nav := NewNavigator(backend)

	outcome := nav.Select(context.Background(), ControlSeason, "2024-25")
	assert.Equal(t, OutcomeSelected, outcome)
	assert.Equal(t, 1, backend.settleCalls, "selection must settle before returning")
}

func TestNavigatorControlNotFound(t *testing.T) {
	backend := newFakeBackend(tablePage())
	backend.hasSeasonType = false
	nav := NewNavigator(backend)

	outcome := nav.Select(context.Background(), ControlSeasonType, "Playoffs")
	assert.Equal(t, OutcomeNotFound, outcome)
	assert.Empty(t, backend.selections, "an absent control must not be interacted with")
}

func TestNavigatorSelectionFailed(t *testing.T) {
	backend := newFakeBackend(tablePage())
	backend.seasonErr = errors.New("element click intercepted")
	nav := NewNavigator(backend)

	outcome := nav.Select(context.Background(), ControlSeason, "2024-25")
	assert.Equal(t, OutcomeSelectionFailed, outcome)
}

func TestNavigatorLookupErrorIsSelectionFailed(t *testing.T) {
	backend := newFakeBackend(tablePage())
	backend.lookupErr = errors.New("target closed")
	nav := NewNavigator(backend)

	outcome := nav.Select(context.Background(), ControlSeason, "2024-25")
	assert.Equal(t, OutcomeSelectionFailed, outcome)
}

func TestConfigValidate(t *testing.T) {
	valid := Config{
		TargetURL:  "https://stats.example.com",
		Seasons:    []string{"2024-25"},
		SeasonType: "Regular Season",
	}
	assert.NoError(t, valid.Validate())

	noSeasons := valid
	noSeasons.Seasons = nil
	assert.Error(t, noSeasons.Validate())

	noType := valid
	noType.SeasonType = ""
	assert.Error(t, noType.Validate())

	noURL := valid
	noURL.TargetURL = ""
	assert.Error(t, noURL.Validate())
}
