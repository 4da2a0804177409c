// Package http provides the Fiber HTTP handlers for the API.
package http

import (
	"strconv"
	"time"

	"kyarte_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ParseIDParam extracts a positive int64 path parameter.
func ParseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidInput(name, "must be a positive integer")
	}
	return id, nil
}

// ParseDateQuery extracts a yyyy-mm-dd query parameter, or the given
// default when absent.
func ParseDateQuery(c *fiber.Ctx, name string, fallback time.Time) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, apperr.InvalidInput(name, "must be yyyy-mm-dd")
	}
	return parsed, nil
}
