// Package retry concentra a política de backoff exponencial usada nas
// chamadas à API do Meta, mantendo a lógica de espera fora do código de
// negócio.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy descreve uma política de retry: número máximo de tentativas extra,
// delay base, multiplicador e teto de delay.
type Policy struct {
	MaxRetries int
	BaseDelay  time.Duration
	Multiplier float64
	MaxDelay   time.Duration
}

// DelayFor calcula o delay da tentativa (0-based): BaseDelay * Multiplier^attempt,
// limitado a MaxDelay.
func (p Policy) DelayFor(attempt int) time.Duration {
	delay := float64(p.BaseDelay)
	for i := 0; i < attempt; i++ {
		delay *= p.Multiplier
	}

	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		return p.MaxDelay
	}

	return time.Duration(delay)
}

// ExhaustedError indica que todas as tentativas da política falharam.
// Carrega o último erro observado.
type ExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("tentativas esgotadas após %d execuções: %v", e.Attempts, e.LastErr)
}

func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}

// Classifier decide se um erro é transitório e pode sugerir um delay mínimo
// informado pelo servidor (ex.: Retry-After). Retornar retryable=false
// interrompe imediatamente com o erro original.
type Classifier func(err error) (retryable bool, serverHint time.Duration)

// Do executa op aplicando a política. Erros não-transitórios são devolvidos
// como estão; esgotar as tentativas devolve *ExhaustedError. A espera
// respeita o cancelamento do contexto.
func Do(ctx context.Context, policy Policy, classify Classifier, op func() error) error {
	var lastErr error

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op()
		if lastErr == nil {
			return nil
		}

		retryable, hint := classify(lastErr)
		if !retryable {
			return lastErr
		}

		if attempt >= policy.MaxRetries {
			return &ExhaustedError{Attempts: attempt + 1, LastErr: lastErr}
		}

		delay := policy.DelayFor(attempt)
		if hint > delay {
			delay = hint
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
