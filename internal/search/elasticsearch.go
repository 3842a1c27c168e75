package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"example.com/gatherly/services/planning/config"
	"example.com/gatherly/services/planning/internal/models"
)

// Client is an interface for the recommendation analytics index
type Client interface {
	IndexRecommendation(ctx context.Context, option *models.EventPlaceOption) error
}

// recommendationDocument is the shape indexed for analytics
type recommendationDocument struct {
	EventID                string    `json:"event_id"`
	VenueID                string    `json:"venue_id"`
	SuggestedBy            string    `json:"suggested_by"`
	AiScore                float64   `json:"ai_score"`
	EstimatedCostPerPerson float64   `json:"estimated_cost_per_person"`
	CreatedAt              time.Time `json:"created_at"`
}

// esClient implements the Client interface
type esClient struct {
	client *elasticsearch.Client
	index  string
}

// NewClient creates a new Elasticsearch client
func NewClient(cfg config.ElasticConfig) (Client, error) {
	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.URL},
	}

	if cfg.Username != "" && cfg.Password != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	return &esClient{
		client: client,
		index:  cfg.Index,
	}, nil
}

// IndexRecommendation indexes a created recommendation record
func (e *esClient) IndexRecommendation(ctx context.Context, option *models.EventPlaceOption) error {
	doc := recommendationDocument{
		EventID:                option.EventID,
		VenueID:                option.VenueID,
		SuggestedBy:            option.SuggestedBy,
		AiScore:                option.AiScore,
		EstimatedCostPerPerson: option.EstimatedCostPerPerson,
		CreatedAt:              option.CreatedAt,
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      e.index,
		DocumentID: option.UUID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, e.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}

	return nil
}
