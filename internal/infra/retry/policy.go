package retry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// statusError é o que os clients de integração implementam (ex: hubspot.APIError)
// para que a política consiga classificar a falha sem importar o pacote do client
type statusError interface {
	HTTPStatus() int
	RetryAfterSeconds() int
}

type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration

	// Sleep injetável para os testes não esperarem de verdade.
	// Quando nil, usa sleep cooperativo (timer + ctx)
	Sleep func(ctx context.Context, d time.Duration) error
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: 1000 * time.Millisecond,
		Multiplier:   2,
		MaxDelay:     30 * time.Second,
	}
}

// Do executa fn até MaxAttempts vezes.
// 429: espera Retry-After se veio, senão backoff — sempre retenta.
// 404 e demais 4xx: terminal, uma única invocação.
// 5xx e falha de transporte: backoff exponencial.
func Do[T any](ctx context.Context, p Policy, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	start := time.Now()
	logger := zerolog.Ctx(ctx)

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		retryable, delay := p.classify(err, attempt)
		if !retryable {
			return zero, err
		}

		if attempt == p.MaxAttempts {
			break
		}

		logger.Warn().
			Str("operation", op).
			Int("attempt", attempt).
			Dur("delay", delay).
			Err(err).
			Msg("⏳ Falha em chamada remota, retentando")

		if err := p.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("operação %s esgotou %d tentativas em %s: %w",
		op, p.MaxAttempts, time.Since(start).Round(time.Millisecond), lastErr)
}

// DoErr é o Do para chamadas que só devolvem erro (update, delete)
func DoErr(ctx context.Context, p Policy, op string, fn func(ctx context.Context) error) error {
	_, err := Do(ctx, p, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func (p Policy) classify(err error, attempt int) (bool, time.Duration) {
	var se statusError
	if errors.As(err, &se) {
		status := se.HTTPStatus()

		switch {
		case status == http.StatusTooManyRequests:
			if ra := se.RetryAfterSeconds(); ra > 0 {
				return true, time.Duration(ra) * time.Second
			}
			return true, p.backoff(attempt)

		case status == http.StatusNotFound:
			return false, 0

		case status >= 500:
			return true, p.backoff(attempt)

		default:
			// Qualquer outro 4xx é erro do cliente, retentar não resolve
			return false, 0
		}
	}

	// Sem status: falha de transporte (timeout, conexão recusada)
	return true, p.backoff(attempt)
}

func (p Policy) backoff(attempt int) time.Duration {
	delay := p.InitialDelay
	for i := 1; i < attempt; i++ {
		delay = time.Duration(float64(delay) * p.Multiplier)
		if delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
