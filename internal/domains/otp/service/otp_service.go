package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/crypto/bcrypt"

	"storefront-backend/internal/domains/otp/model"
	"storefront-backend/internal/shared"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/logger"
)

type Service interface {
	// Send issues a fresh code for email, replacing any earlier one.
	// A locked email gets ErrTooManyAttempts.
	Send(ctx context.Context, email string) error
	// Verify consumes the code on success. The MaxAttempts-th failure
	// drops the code and locks the email for LockTTL.
	Verify(ctx context.Context, email, code string) error
}

type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type otpService struct {
	cache    cache.Cache
	tasks    TaskEnqueuer
	generate func() (string, error)
	now      func() time.Time
}

func NewOTPService(c cache.Cache, tasks TaskEnqueuer) Service {
	return &otpService{cache: c, tasks: tasks, generate: randomCode, now: time.Now}
}

func randomCode() (string, error) {
	limit := big.NewInt(1_000_000)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", model.CodeLength, n.Int64()), nil
}

func (s *otpService) Send(ctx context.Context, email string) error {
	email = model.NormalizeEmail(email)

	if err := s.checkLock(ctx, email); err != nil {
		return err
	}

	code, err := s.generate()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash otp: %w", err)
	}

	record := model.Record{Hash: string(hash), ExpiresAt: s.now().Add(model.TTL)}
	if err := s.cache.Set(ctx, model.CodeKey(email), record, model.TTL); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	task, err := utils.NewTask(shared.TypeSendOTPEmail, shared.OTPEmailPayload{
		Email:     email,
		Code:      code,
		ExpiresIn: "15 minutes",
	}, asynq.Queue(shared.QueueCritical), asynq.MaxRetry(3), asynq.Timeout(30*time.Second))
	if err != nil {
		return err
	}
	if _, err := s.tasks.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue otp email: %w", err)
	}

	logger.Info("OTP issued", map[string]interface{}{"email": email})
	return nil
}

func (s *otpService) Verify(ctx context.Context, email, code string) error {
	email = model.NormalizeEmail(email)

	if err := s.checkLock(ctx, email); err != nil {
		return err
	}

	var record model.Record
	found, err := s.cache.Get(ctx, model.CodeKey(email), &record)
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}
	if !found || s.now().After(record.ExpiresAt) {
		return model.NewOTPError(model.ErrCodeOTPExpired, "OTP expired or not requested", model.ErrOTPExpired)
	}

	err = bcrypt.CompareHashAndPassword([]byte(record.Hash), []byte(code))
	if err == nil {
		if err := s.cache.Delete(ctx, model.CodeKey(email), model.AttemptsKey(email)); err != nil {
			logger.Warn("clear otp failed", map[string]interface{}{"error": err.Error()})
		}
		return nil
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return fmt.Errorf("compare otp: %w", err)
	}

	return s.recordFailure(ctx, email)
}

// recordFailure counts a wrong code. Send does not reset the counter, so
// re-requesting a code does not buy more guesses.
func (s *otpService) recordFailure(ctx context.Context, email string) error {
	attempts, err := s.cache.Increment(ctx, model.AttemptsKey(email))
	if err != nil {
		return fmt.Errorf("count otp attempts: %w", err)
	}
	if attempts == 1 {
		if err := s.cache.Expire(ctx, model.AttemptsKey(email), model.TTL); err != nil {
			// A counter without a TTL would outlive the window; start over instead.
			logger.Warn("set otp attempts ttl failed", map[string]interface{}{"email": email, "error": err.Error()})
			_ = s.cache.Delete(ctx, model.AttemptsKey(email))
		}
	}

	if attempts < model.MaxAttempts {
		return model.NewOTPError(model.ErrCodeOTPInvalid, "Invalid OTP", model.ErrOTPInvalid)
	}

	lockedUntil := s.now().Add(model.LockTTL)
	if err := s.cache.Set(ctx, model.LockKey(email), lockedUntil, model.LockTTL); err != nil {
		return fmt.Errorf("lock otp: %w", err)
	}
	if err := s.cache.Delete(ctx, model.CodeKey(email), model.AttemptsKey(email)); err != nil {
		logger.Warn("clear otp failed", map[string]interface{}{"error": err.Error()})
	}

	logger.Warn("OTP locked after failed attempts", map[string]interface{}{
		"email":        email,
		"locked_until": lockedUntil,
	})
	return tooManyAttempts()
}

func (s *otpService) checkLock(ctx context.Context, email string) error {
	locked, err := s.cache.Exists(ctx, model.LockKey(email))
	if err != nil {
		return fmt.Errorf("check otp lock: %w", err)
	}
	if locked {
		return tooManyAttempts()
	}
	return nil
}

func tooManyAttempts() error {
	return model.NewOTPError(model.ErrCodeTooManyAttempts, "Too many attempts, try again later", model.ErrTooManyAttempts)
}
