package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/styleshelf/storefront/internal/logger"
)

// OrderService is interface for settling stale orders
type OrderService interface {
	SweepStaleOrders(ctx context.Context, age time.Duration) error
}

// Reconciler periodically settles stale created orders against the gateway
// so abandoned checkouts do not dangle in the ledger forever
type Reconciler struct {
	svc      OrderService
	interval time.Duration
	staleAge time.Duration
}

// NewReconciler creates new Reconciler instance
func NewReconciler(svc OrderService, interval, staleAge time.Duration) *Reconciler {
	return &Reconciler{
		svc:      svc,
		interval: interval,
		staleAge: staleAge,
	}
}

// Run sweeps the ledger until the context is cancelled
func (rc *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(rc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Debug("order reconciler is done")
			return
		case <-ticker.C:
			if err := rc.svc.SweepStaleOrders(ctx, rc.staleAge); err != nil {
				logger.Log.Error("sweep stale orders", zap.Error(err))
			}
		}
	}
}
