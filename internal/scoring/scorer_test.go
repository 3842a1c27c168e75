package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/gatherly/services/planning/internal/models"
)

func TestHeuristicScorerCuisineMatch(t *testing.T) {
	scorer := NewHeuristicScorer()
	event := &models.Event{Title: "Team dinner"}
	preferences := &models.AggregatedPreferences{
		CuisineTypes:      []string{"thai", "italian"},
		AverageBudget:     30,
		MaxDistanceRadius: 10,
	}

	matching := &models.Venue{Base: models.Base{UUID: "v1"}, Name: "Thai Garden", Category: "thai", Rating: 4.5, PriceTier: 25}
	other := &models.Venue{Base: models.Base{UUID: "v2"}, Name: "Steakhouse", Category: "steakhouse", Rating: 4.5, PriceTier: 25}

	matchResult, err := scorer.Score(context.Background(), matching, preferences, event, nil)
	require.NoError(t, err)

	otherResult, err := scorer.Score(context.Background(), other, preferences, event, nil)
	require.NoError(t, err)

	require.Greater(t, matchResult.Score, otherResult.Score)
	require.Contains(t, matchResult.Pros, "Matches the group's taste for thai")
	require.NotEmpty(t, otherResult.Cons)
}

func TestHeuristicScorerDeterministic(t *testing.T) {
	scorer := NewHeuristicScorer()
	event := &models.Event{Title: "Birthday"}
	preferences := &models.AggregatedPreferences{
		CuisineTypes:      []string{"sushi"},
		AverageBudget:     40,
		MaxDistanceRadius: 5,
	}
	venue := &models.Venue{Base: models.Base{UUID: "v1"}, Name: "Sushi Bar", Category: "sushi", Rating: 4, PriceTier: 35, Latitude: 52.52, Longitude: 13.40}
	coordinates := []models.Coordinate{{Latitude: 52.51, Longitude: 13.41}}

	first, err := scorer.Score(context.Background(), venue, preferences, event, coordinates)
	require.NoError(t, err)

	second, err := scorer.Score(context.Background(), venue, preferences, event, coordinates)
	require.NoError(t, err)

	require.Equal(t, first.Score, second.Score)
	require.Equal(t, first.Reasoning, second.Reasoning)
}

func TestHeuristicScorerBounds(t *testing.T) {
	scorer := NewHeuristicScorer()
	event := &models.Event{Title: "Offsite"}
	preferences := &models.AggregatedPreferences{
		CuisineTypes:      []string{"thai"},
		AverageBudget:     10,
		MaxDistanceRadius: 1,
	}
	// Far away, wrong cuisine, expensive, unrated
	venue := &models.Venue{Base: models.Base{UUID: "v1"}, Name: "Remote Grill", Category: "bbq", Rating: 0, PriceTier: 200, Latitude: 40.0, Longitude: -70.0}
	coordinates := []models.Coordinate{{Latitude: 52.52, Longitude: 13.40}}

	result, err := scorer.Score(context.Background(), venue, preferences, event, coordinates)
	require.NoError(t, err)
	require.GreaterOrEqual(t, result.Score, 0.0)
	require.LessOrEqual(t, result.Score, 100.0)
}
