//go:build ignore

// Local stand-in for the jobs API.
//
//	go run scripts/test-server.go -addr :8080
//	jobboard positions --target http://localhost:8080 --description go
package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

const pageSize = 2

type position struct {
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

func strptr(s string) *string { return &s }

var positions = []position{
	{ID: "1", Type: "Full Time", Title: "iOS Developer", Company: "Gopher Inc", Location: "Berlin", CompanyURL: strptr("https://gopher.example.com"), Description: "Swift and some Go"},
	{ID: "2", Type: "Full Time", Title: "Go Developer", Company: "Acme", Location: "Remote", Description: "Services in Go"},
	{ID: "3", Type: "Contract", Title: "Android Developer", Company: "Acme", Location: "New York, NY", Description: "Kotlin"},
	{ID: "4", Type: "Full Time", Title: "Site Reliability Engineer", Company: "Initech", Location: "Berlin", Description: "Go, Kubernetes"},
}

func matches(p position, description, location string, fullTime bool) bool {
	if description != "" {
		text := strings.ToLower(p.Title + " " + p.Description)
		for _, word := range strings.Fields(strings.ToLower(description)) {
			if !strings.Contains(text, word) {
				return false
			}
		}
	}
	if location != "" && !strings.Contains(strings.ToLower(p.Location), strings.ToLower(location)) {
		return false
	}
	return !fullTime || p.Type == "Full Time"
}

func positionsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	fullTime := q.Get("full_time") == "true"

	found := []position{}
	for _, p := range positions {
		if matches(p, q.Get("description"), q.Get("location"), fullTime) {
			p.URL = "http://" + r.Host + "/positions/" + p.ID
			p.CreatedAt = time.Now().UTC().Format(time.RFC1123)
			found = append(found, p)
		}
	}

	start := page * pageSize
	if start > len(found) {
		start = len(found)
	}
	end := min(start+pageSize, len(found))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(found[start:end])
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	log.SetHandler(cli.Default)

	mux := http.NewServeMux()
	mux.HandleFunc("/positions.json", positionsHandler)
	mux.HandleFunc("/private", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/forbidden", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{"method": r.Method, "url": r.URL.String()}).Info("request")
		mux.ServeHTTP(w, r)
	})

	log.Infof("serving the jobs API on %s", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
