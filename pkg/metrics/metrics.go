// Package metrics expone los contadores Prometheus del motor de stock.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Razones de rechazo para MovementsRejected.
const (
	ReasonInvalid      = "invalid_movement"
	ReasonNotFound     = "product_not_found"
	ReasonInsufficient = "insufficient_stock"
)

var (
	// MovementsRegistered movimientos aceptados, etiquetados por tipo (entry/exit).
	MovementsRegistered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "almacen",
		Name:      "movements_registered_total",
		Help:      "Movimientos de stock registrados, por tipo.",
	}, []string{"kind"})

	// MovementsRejected movimientos rechazados antes de escribir, por razón.
	MovementsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "almacen",
		Name:      "movements_rejected_total",
		Help:      "Movimientos de stock rechazados por validación, por razón.",
	}, []string{"reason"})
)
