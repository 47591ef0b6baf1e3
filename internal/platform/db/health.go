package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// poolStatus is the pool snapshot reported by /health/db. Operators watch
// in_use creeping toward max as the early sign of a slow-query pileup.
type poolStatus struct {
	Total       int32  `json:"total"`
	Idle        int32  `json:"idle"`
	InUse       int32  `json:"in_use"`
	Max         int32  `json:"max"`
	Acquires    int64  `json:"acquires"`
	AcquireWait string `json:"acquire_wait"`
}

func snapshotPool(pool *pgxpool.Pool) poolStatus {
	stat := pool.Stat()
	return poolStatus{
		Total:       stat.TotalConns(),
		Idle:        stat.IdleConns(),
		InUse:       stat.AcquiredConns(),
		Max:         stat.MaxConns(),
		Acquires:    stat.AcquireCount(),
		AcquireWait: stat.AcquireDuration().String(),
	}
}

// HealthHandler serves the database health endpoint. A failed ping reports
// 503 without echoing the driver error to the caller.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
				"status": "unavailable",
				"pool":   snapshotPool(pool),
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"status": "ok",
			"pool":   snapshotPool(pool),
		})
	}
}
