package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sushantkumaryadav912/Inventory-Manager/internal/application/inventory"
	"github.com/sushantkumaryadav912/Inventory-Manager/internal/domain"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/config"
	"github.com/sushantkumaryadav912/Inventory-Manager/pkg/logger"
)

var tracer = otel.Tracer("inventory-manager/postgres")

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxOptions configura cada transacción del ledger.
type TxOptions struct {
	IsoLevel         pgx.TxIsoLevel
	Timeout          time.Duration // plazo total: adquirir conexión + transacción + commit
	StatementTimeout time.Duration
	LockTimeout      time.Duration
}

// TxOptionsFromConfig arma las opciones desde la configuración de DB y ledger.
func TxOptionsFromConfig(db config.DBConfig, l config.LedgerConfig) TxOptions {
	iso := pgx.ReadCommitted
	switch db.Isolation {
	case "repeatable_read":
		iso = pgx.RepeatableRead
	case "serializable":
		iso = pgx.Serializable
	}
	return TxOptions{
		IsoLevel:         iso,
		Timeout:          l.TxTimeout,
		StatementTimeout: l.StatementTimeout,
		LockTimeout:      l.LockTimeout,
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	opts TxOptions
	log  *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, opts TxOptions, log *logger.Logger) *TxRunner {
	if log == nil {
		log = logger.Nop()
	}
	return &TxRunner{pool: pool, opts: opts, log: log.Component("tx")}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Si el plazo vence antes de obtener conexión o durante la transacción devuelve domain.ErrTimeout
// y nada queda confirmado.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.Repos) error) (err error) {
	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(attribute.String("tx.isolation", string(r.opts.IsoLevel))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: r.opts.IsoLevel, AccessMode: pgx.ReadWrite})
	if err != nil {
		return classify(ctx, "begin transaction", err)
	}
	// Rollback con contexto de fondo: debe completarse aunque el plazo ya haya vencido.
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(context.Background()); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.log.Error().Err(rbErr).AnErr("original_error", err).Msg("rollback falló")
		}
	}()

	if r.opts.StatementTimeout > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", r.opts.StatementTimeout.Milliseconds())); err != nil {
			return classify(ctx, "set statement_timeout", err)
		}
	}
	if r.opts.LockTimeout > 0 {
		if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.opts.LockTimeout.Milliseconds())); err != nil {
			return classify(ctx, "set lock_timeout", err)
		}
	}

	if err := fn(ctx, reposFor(tx)); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, domain.ErrTimeout) && !domain.IsBusiness(err) {
			return fmt.Errorf("%w: %w", domain.ErrTimeout, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return classify(ctx, "commit transaction", err)
	}
	return nil
}

func reposFor(q Querier) inventory.Repos {
	return inventory.Repos{
		Stock:     NewStockRepository(q),
		Movements: NewInventoryMovementRepository(q),
		Products:  NewProductRepository(q),
		Suppliers: NewSupplierRepository(q),
		Customers: NewCustomerRepository(q),
		Purchases: NewPurchaseRepository(q),
		Sales:     NewSaleRepository(q),
	}
}
