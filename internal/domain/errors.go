package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrRaceConditionDetected = errors.New("modificación concurrente detectada")
	ErrTimeout               = errors.New("tiempo de espera agotado")
	ErrInfrastructure        = errors.New("falla de infraestructura")
)

// ValidationError describe una entrada rechazada antes de abrir la transacción.
// Se compara con errors.Is(err, ErrInvalidInput).
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidation construye un error de validación para un campo.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError indica qué entidad no existe (o está inactiva) dentro de la tienda.
type NotFoundError struct {
	Entity string
	ID     string
}

// NewNotFound construye un error NotFound para la entidad indicada.
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// StockError detalla un faltante: cantidad solicitada vs disponible.
type StockError struct {
	ProductID string
	Requested int64
	Available int64
}

// NewInsufficientStock construye el error de faltante para un producto.
func NewInsufficientStock(productID string, requested, available int64) *StockError {
	return &StockError{ProductID: productID, Requested: requested, Available: available}
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s: producto %s solicitado %d disponible %d", ErrInsufficientStock, e.ProductID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

// IsBusiness indica si el error es de negocio (4xx) y no de infraestructura.
func IsBusiness(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrRaceConditionDetected) ||
		errors.Is(err, ErrForbidden)
}
