// Package scoring defines the pluggable venue scoring strategy consumed by
// the recommendation pipeline. The pipeline only depends on the Score
// contract; the bundled heuristic implementation keeps the service usable
// without an external model.
package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"example.com/gatherly/services/planning/internal/models"
)

// Result is the outcome of scoring one venue for one event
type Result struct {
	Score     float64
	Reasoning string
	Pros      []string
	Cons      []string
}

// VenueScorer scores a candidate venue against a group's consensus profile
type VenueScorer interface {
	Score(ctx context.Context, venue *models.Venue, preferences *models.AggregatedPreferences, event *models.Event, coordinates []models.Coordinate) (*Result, error)
}

// heuristicScorer implements VenueScorer with a deterministic formula over
// rating, cuisine match, budget fit, and distance
type heuristicScorer struct{}

// NewHeuristicScorer creates the default scorer
func NewHeuristicScorer() VenueScorer {
	return &heuristicScorer{}
}

// Score scores a venue on a 0-100 scale
func (s *heuristicScorer) Score(ctx context.Context, venue *models.Venue, preferences *models.AggregatedPreferences, event *models.Event, coordinates []models.Coordinate) (*Result, error) {
	score := venue.Rating * 10
	var pros, cons []string

	if venue.Rating >= 4 {
		pros = append(pros, fmt.Sprintf("Highly rated (%.1f/5)", venue.Rating))
	} else if venue.Rating > 0 && venue.Rating < 3 {
		cons = append(cons, fmt.Sprintf("Below-average rating (%.1f/5)", venue.Rating))
	}

	if len(preferences.CuisineTypes) == 0 {
		score += 10
	} else if matchesCuisine(venue.Category, preferences.CuisineTypes) {
		score += 30
		pros = append(pros, fmt.Sprintf("Matches the group's taste for %s", venue.Category))
	} else {
		cons = append(cons, fmt.Sprintf("%s is not among the group's preferred cuisines", venue.Category))
	}

	if preferences.AverageBudget > 0 && venue.PriceTier > 0 {
		budget := float64(preferences.AverageBudget)
		switch {
		case venue.PriceTier <= budget:
			score += 15
			pros = append(pros, fmt.Sprintf("Within the group budget of %d per person", preferences.AverageBudget))
		case venue.PriceTier <= budget*1.5:
			score += 5
		default:
			score -= 10
			cons = append(cons, fmt.Sprintf("Estimated cost %.0f exceeds the group budget of %d", venue.PriceTier, preferences.AverageBudget))
		}
	}

	if len(coordinates) > 0 && (venue.Latitude != 0 || venue.Longitude != 0) {
		distance := haversineKm(centroid(coordinates), models.Coordinate{
			Latitude:  venue.Latitude,
			Longitude: venue.Longitude,
		})
		if distance <= preferences.MaxDistanceRadius {
			score += 5
			pros = append(pros, fmt.Sprintf("%.1f km from the group", distance))
		} else {
			score -= 15
			cons = append(cons, fmt.Sprintf("%.1f km away, outside the %.0f km radius", distance, preferences.MaxDistanceRadius))
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &Result{
		Score:     score,
		Reasoning: fmt.Sprintf("%s scored %.0f/100 based on rating, cuisine fit, budget fit, and distance for %q", venue.Name, score, event.Title),
		Pros:      pros,
		Cons:      cons,
	}, nil
}

// matchesCuisine checks the venue category against the preferred tags,
// case-insensitively
func matchesCuisine(category string, cuisines []string) bool {
	for _, cuisine := range cuisines {
		if strings.EqualFold(category, cuisine) {
			return true
		}
	}
	return false
}

// centroid returns the average of the coordinates
func centroid(coordinates []models.Coordinate) models.Coordinate {
	var lat, lng float64
	for _, c := range coordinates {
		lat += c.Latitude
		lng += c.Longitude
	}
	n := float64(len(coordinates))
	return models.Coordinate{Latitude: lat / n, Longitude: lng / n}
}

const earthRadiusKm = 6371

// haversineKm returns the great-circle distance between two coordinates
func haversineKm(a, b models.Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
