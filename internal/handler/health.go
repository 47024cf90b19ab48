package handler

import "net/http"

// HealthHandler serves the liveness probes. Neither endpoint touches the
// database so a probe stays green while the store is down.
type HealthHandler struct {
	environment string
	database    string
}

// NewHealthHandler creates a HealthHandler reporting the given environment
// name and database kind ("postgres" or "sqlite").
func NewHealthHandler(environment, database string) *HealthHandler {
	return &HealthHandler{environment: environment, database: database}
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"environment": h.environment,
		"database":    h.database,
	})
}

// ContactsHealth handles GET /api/contacts/health.
func (h *HealthHandler) ContactsHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "contacts-api",
	})
}
