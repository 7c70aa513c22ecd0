// Package metrics define los contadores Prometheus del libro de movimientos.
// Se registran con promauto en el registry por defecto; el endpoint /metrics
// los expone vía promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovementsTotal movimientos de stock registrados, por tipo (IN/OUT) y origen.
	MovementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "donaciones_stock_movements_total",
		Help: "Movimientos de stock registrados",
	}, []string{"type", "reference_kind"})

	// DonationsProcessedTotal donaciones convertidas en stock.
	DonationsProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donaciones_donations_processed_total",
		Help: "Donaciones procesadas (convertidas en stock)",
	})

	// DonationsCancelledTotal donaciones canceladas, por estado previo.
	DonationsCancelledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "donaciones_donations_cancelled_total",
		Help: "Donaciones canceladas",
	}, []string{"previous_status"})

	// DistributionsTotal distribuciones registradas.
	DistributionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donaciones_distributions_total",
		Help: "Distribuciones registradas",
	})

	// DistributionsCancelledTotal distribuciones canceladas (con reversa completa).
	DistributionsCancelledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donaciones_distributions_cancelled_total",
		Help: "Distribuciones canceladas",
	})

	// RejectionsTotal operaciones rechazadas por regla de negocio.
	RejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "donaciones_rejections_total",
		Help: "Operaciones rechazadas por regla de negocio",
	}, []string{"reason"}) // insufficient_stock | quota_exceeded
)
