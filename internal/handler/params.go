package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trainhub/scheduler-api/internal/schedule"
	appErrors "github.com/trainhub/scheduler-api/pkg/errors"
)

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := schedule.ParseDate(raw)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid %s: expected YYYY-MM-DD", name))
	}
	return &parsed, nil
}

// requireDateQuery reads a mandatory YYYY-MM-DD query parameter.
func requireDateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("missing required query parameter %q", name))
	}
	parsed, err := schedule.ParseDate(raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid %s: expected YYYY-MM-DD", name))
	}
	return parsed, nil
}
