package handlers

import (
	"net/http"
	"time"

	"github.com/blacklandcg/scoutiq/internal/datalinks"
	"github.com/blacklandcg/scoutiq/pkg/database"
	"github.com/blacklandcg/scoutiq/pkg/logger"
	"github.com/blacklandcg/scoutiq/pkg/redis"
)

// StatusHandler reports process dependencies: database, redis, and the
// loaded data-links configuration.
type StatusHandler struct {
	db     *database.DB
	redis  *redis.Client
	links  *datalinks.Config
	logger *logger.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *database.DB, rdb *redis.Client, links *datalinks.Config, log *logger.Logger) *StatusHandler {
	return &StatusHandler{
		db:     db,
		redis:  rdb,
		links:  links,
		logger: log,
	}
}

// GetStatus returns dependency health and configuration fingerprint.
// GET /status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbStatus, _ := h.db.HealthCheck(ctx)

	tables := 0
	if dbStatus.Healthy {
		if n, err := h.db.TableCount(ctx); err == nil {
			tables = n
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"database": map[string]interface{}{
			"healthy": dbStatus.Healthy,
			"tables":  tables,
			"pool":    dbStatus.Stats,
		},
		"redis": map[string]interface{}{
			"enabled": h.redis.Enabled(),
		},
		"data_links": map[string]interface{}{
			"endpoints": len(h.links.Endpoints),
			"datasets":  len(h.links.Datasets),
			"contracts": len(h.links.Contracts),
			"hash":      h.links.Hash(),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
