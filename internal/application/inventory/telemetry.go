package inventory

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

var tracer = otel.Tracer("inventory-manager/ledger")

// ledgerMetrics contadores del motor; con el MeterProvider global por defecto son no-op.
type ledgerMetrics struct {
	operations metric.Int64Counter
	failures   metric.Int64Counter
	movements  metric.Int64Counter
	anomalies  metric.Int64Counter
}

func newLedgerMetrics() ledgerMetrics {
	meter := otel.Meter("inventory-manager/ledger")
	return ledgerMetrics{
		operations: counter(meter, "ledger.operations", "Operaciones del ledger confirmadas"),
		failures:   counter(meter, "ledger.failures", "Operaciones del ledger revertidas, por tipo de error"),
		movements:  counter(meter, "ledger.movements", "Movimientos de inventario anexados"),
		anomalies:  counter(meter, "ledger.race_anomalies", "Re-verificaciones de stock violadas dentro de una transacción"),
	}
}

func counter(meter metric.Meter, name, desc string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(desc))
	if err != nil {
		return noop.Int64Counter{}
	}
	return c
}
