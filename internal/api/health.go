package api

import (
	"encoding/json"
	"net/http"
	"time"

	"benishangul-police/idregistry/internal/db"
	"benishangul-police/idregistry/internal/models/entities"
)

// HealthCheckHandler handles GET /api/health
func HealthCheckHandler(store *db.Store, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := make(map[string]entities.ServiceStatus)

		dbStatus := "ok"
		dbDetails := "registry store reachable"
		if err := store.Sqlx().Ping(); err != nil {
			dbStatus = "down"
			dbDetails = err.Error()
		}
		services[store.Driver()] = entities.ServiceStatus{
			Status:  dbStatus,
			Details: dbDetails,
		}

		overallStatus := "ok"
		for _, svc := range services {
			if svc.Status != "ok" {
				overallStatus = "down"
				break
			}
		}

		now := time.Now()
		resp := entities.HealthCheckResponse{
			Services: services,
			Status:   overallStatus,
			UpSince:  upSince,
			Uptime:   now.Sub(upSince).Round(time.Second).String(),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// RootHandler handles GET / with the service banner the original deployment
// exposed.
func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banner := map[string]string{
			"name":   "BG Police ID System API",
			"status": "running",
			"health": "/api/health",
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(banner)
	}
}
