package hubspot

import (
	"fmt"
	"net/http"
)

// APIError carrega o status HTTP da resposta do HubSpot para que a
// política de retry consiga classificar (429/5xx retenta, 404/4xx não)
type APIError struct {
	StatusCode int
	Body       string
	RetryAfter int // segundos, vindo do header Retry-After (0 = ausente)
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api hubspot rejeitou (status %d): %s", e.StatusCode, e.Body)
}

func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

func (e *APIError) RetryAfterSeconds() int {
	return e.RetryAfter
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}
