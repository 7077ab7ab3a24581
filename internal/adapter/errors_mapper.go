package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError turns a provider response into nil for 2xx, [ErrTokenRejected]
// for 4xx and [ErrProviderUnavailable] otherwise.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	if resp.StatusCode() >= http.StatusBadRequest && resp.StatusCode() < http.StatusInternalServerError {
		return fmt.Errorf("%w: http %d: %s", ErrTokenRejected, resp.StatusCode(), body)
	}
	return fmt.Errorf("%w: http %d: %s", ErrProviderUnavailable, resp.StatusCode(), body)
}
