package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
)

// Códigos SQLSTATE que el ledger distingue.
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03" // lock_timeout
	pgQueryCanceled        = "57014" // statement_timeout o cancelación por contexto
	pgUniqueViolation      = "23505"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// classify traduce un error de pgx al error de dominio correspondiente conservando el original.
//   - 40001 / 40P01 -> ErrRaceConditionDetected
//   - 55P03 / 57014 / contexto vencido -> ErrTimeout
//   - resto (conexión, constraints, etc.) -> ErrInfrastructure
func classify(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrRaceConditionDetected, err)
		case pgLockNotAvailable, pgQueryCanceled:
			return fmt.Errorf("%s: %w: %w", op, domain.ErrTimeout, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrInfrastructure, err)
}
