// Package jobs is a thin adapter over the HTTP client for the jobs API.
package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/wesleyorama2/jobboard/internal/http"
)

// DefaultTarget is the public jobs API.
const DefaultTarget = "https://jobs.github.com"

const positionsPath = "/positions.json"

// API lists job positions.
type API interface {
	Positions(ctx context.Context, params SearchParams) ([]Position, error)
}

// Position is a single job listing.
type Position struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	URL         string  `json:"url"`
	CreatedAt   string  `json:"created_at"`
	Company     string  `json:"company"`
	CompanyURL  *string `json:"company_url"`
	Location    string  `json:"location"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	HowToApply  string  `json:"how_to_apply"`
	CompanyLogo *string `json:"company_logo"`
}

// SearchParams are the query parameters of the positions endpoint.
type SearchParams struct {
	Description string `url:"description,omitempty"`
	Location    string `url:"location,omitempty"`
	FullTime    bool   `url:"full_time,omitempty"`
	Page        int    `url:"page,omitempty"`
}

// Parameters flattens the search into request parameters.
func (p SearchParams) Parameters() (http.Parameters, error) {
	values, err := query.Values(p)
	if err != nil {
		return nil, fmt.Errorf("encoding search parameters: %w", err)
	}
	params := make(http.Parameters, len(values))
	for key := range values {
		params[key] = values.Get(key)
	}
	return params, nil
}

// Service talks to the positions endpoint through an http.Client.
type Service struct {
	client *http.Client
	target string
}

// NewService returns a Service for target; an empty target means DefaultTarget.
func NewService(client *http.Client, target string) *Service {
	if target == "" {
		target = DefaultTarget
	}
	return &Service{
		client: client,
		target: strings.TrimRight(target, "/"),
	}
}

// PositionsResponse fetches the raw positions response.
func (s *Service) PositionsResponse(ctx context.Context, params SearchParams) (*http.Response, error) {
	parameters, err := params.Parameters()
	if err != nil {
		return nil, err
	}
	return s.client.Get(ctx, s.target, positionsPath, parameters)
}

// Positions fetches and decodes the positions matching params.
func (s *Service) Positions(ctx context.Context, params SearchParams) ([]Position, error) {
	resp, err := s.PositionsResponse(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("fetching positions: %w", err)
	}
	positions, err := http.Decoded[[]Position](resp)
	if err != nil {
		return nil, fmt.Errorf("decoding positions: %w", err)
	}
	return positions, nil
}
