// Package web exposes metrics and a small status surface over HTTP.
package web

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opengrab/go-gripper-serial/internal/gripper"
)

type status struct {
	Profile  string `json:"profile"`
	Pin      string `json:"pin"`
	Angle    *int   `json:"angle"` // null until the first successful move
	MinAngle int    `json:"min_angle"`
	MaxAngle int    `json:"max_angle"`
}

// CreateHandler builds the HTTP handler: /metrics, /health and /status.
func CreateHandler(g *gripper.Gripper, profile string) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		cfg := g.Config()
		s := status{
			Profile:  profile,
			Pin:      cfg.Pin,
			MinAngle: cfg.MinAngle,
			MaxAngle: cfg.MaxAngle,
		}
		if angle, ok := g.Angle(); ok {
			s.Angle = &angle
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	})

	return mux
}
