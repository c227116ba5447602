package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jbhttp "github.com/wesleyorama2/jobboard/internal/http"
)

const positionsJSON = `[
	{
		"id": "0a1b2c",
		"type": "Full Time",
		"url": "https://jobs.example.com/positions/0a1b2c",
		"created_at": "Thu Apr 11 12:00:00 UTC 2019",
		"company": "Gopher Inc",
		"company_url": null,
		"location": "Berlin",
		"title": "iOS Developer",
		"description": "<p>Build apps</p>",
		"how_to_apply": "mail us",
		"company_logo": "https://jobs.example.com/logo.png"
	}
]`

func TestSearchParams_Parameters(t *testing.T) {
	tests := []struct {
		name   string
		params SearchParams
		want   jbhttp.Parameters
	}{
		{
			name:   "empty",
			params: SearchParams{},
			want:   jbhttp.Parameters{},
		},
		{
			name:   "description and full time",
			params: SearchParams{Description: "ios developer", FullTime: true},
			want:   jbhttp.Parameters{"description": "ios developer", "full_time": "true"},
		},
		{
			name:   "all fields",
			params: SearchParams{Description: "go", Location: "New York", FullTime: true, Page: 2},
			want: jbhttp.Parameters{
				"description": "go",
				"location":    "New York",
				"full_time":   "true",
				"page":        "2",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.params.Parameters()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Positions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/positions.json", r.URL.Path)
		assert.Equal(t, "description=ios%20developer&full_time=true", r.URL.RawQuery)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(positionsJSON))
	}))
	defer server.Close()

	var api API = NewService(jbhttp.NewClient(), server.URL+"/")

	positions, err := api.Positions(context.Background(), SearchParams{Description: "ios developer", FullTime: true})
	require.NoError(t, err)
	require.Len(t, positions, 1)

	p := positions[0]
	assert.Equal(t, "0a1b2c", p.ID)
	assert.Equal(t, "Gopher Inc", p.Company)
	assert.Equal(t, "iOS Developer", p.Title)
	assert.Equal(t, "mail us", p.HowToApply)
	assert.Nil(t, p.CompanyURL)
	require.NotNil(t, p.CompanyLogo)
	assert.Equal(t, "https://jobs.example.com/logo.png", *p.CompanyLogo)
}

func TestService_PositionsErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, "", jbhttp.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, "", jbhttp.ErrForbidden},
		{"server error", http.StatusInternalServerError, "", jbhttp.ErrInvalidResponse},
		{"wrong shape", http.StatusOK, `{"positions":[]}`, jbhttp.ErrDecodingFailure},
		{"empty body", http.StatusOK, "", jbhttp.ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewService(jbhttp.NewClient(), server.URL).Positions(context.Background(), SearchParams{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewService_DefaultTarget(t *testing.T) {
	s := NewService(jbhttp.NewClient(), "")
	assert.Equal(t, DefaultTarget, s.target)
}
