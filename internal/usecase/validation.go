package usecase

import (
	"fmt"

	"github.com/xavierca1/ligue-crm-sync/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateWebhookBatch checa a forma do lote ANTES de qualquer
// processamento: um evento malformado rejeita o lote inteiro (400)
func ValidateWebhookBatch(events []entity.WebhookEvent) []ValidationError {
	var errors []ValidationError

	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("events[%d]", i),
				Message: err.Error(),
			})
		}
	}

	return errors
}
