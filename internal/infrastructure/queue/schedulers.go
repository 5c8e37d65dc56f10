package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/config"
	"storefront-backend/internal/shared"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	cfg       config.QueueConfig
}

func NewScheduler(redis asynq.RedisClientOpt, cfg config.QueueConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redis,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		cfg:       cfg,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerDeactivateExpiredCouponsJob()
}

// ================================================
// Deactivate Expired Coupons (daily by default)
// ================================================
func (s *Scheduler) registerDeactivateExpiredCouponsJob() error {
	task, err := utils.NewTask(shared.TypeDeactivateExpiredCoupons, shared.DeactivateExpiredCouponsPayload{})
	if err != nil {
		return err
	}

	_, err = s.scheduler.Register(
		s.cfg.CouponExpiryCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register DeactivateExpiredCoupons job", err)
		return err
	}

	logger.Info("Registered DeactivateExpiredCoupons", map[string]interface{}{"cron": s.cfg.CouponExpiryCron})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
