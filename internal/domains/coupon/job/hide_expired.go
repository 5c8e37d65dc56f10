package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"storefront-backend/pkg/logger"
)

type ExpiredCouponHider interface {
	HideExpired(ctx context.Context) (int64, error)
}

// HideExpiredHandler processes the periodic coupon:deactivate_expired task.
type HideExpiredHandler struct {
	coupons ExpiredCouponHider
}

func NewHideExpiredHandler(coupons ExpiredCouponHider) *HideExpiredHandler {
	return &HideExpiredHandler{coupons: coupons}
}

func (h *HideExpiredHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	n, err := h.coupons.HideExpired(ctx)
	if err != nil {
		return fmt.Errorf("hide expired coupons: %w", err)
	}

	logger.Info("Coupon expiry sweep finished", map[string]interface{}{
		"task":   t.Type(),
		"hidden": n,
	})
	return nil
}
