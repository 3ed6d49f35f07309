package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for non-2xx responses from a provider API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bad status %d: %s", e.StatusCode, e.Body)
}

// rateLimitIndicators are the provider-message fragments treated as
// rate-limit rejections, matched case-insensitively.
var rateLimitIndicators = []string{
	"rate limit",
	"429",
	"too many requests",
	"quota exceeded",
	"rate exceeded",
}

// IsRateLimit reports whether err represents a rate-limit rejection, either
// by HTTP status or by provider error text.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, indicator := range rateLimitIndicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}
