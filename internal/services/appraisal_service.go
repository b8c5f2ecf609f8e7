package services

import (
	"context"
	"fmt"
	"time"

	"carprice-system/internal/apperror"
	"carprice-system/internal/config"
	"carprice-system/internal/logger"
	"carprice-system/internal/models"
	"carprice-system/internal/redis"
	"carprice-system/internal/valuation"

	"github.com/google/uuid"
)

const defaultQuoteTTL = time.Hour

// AppraisalService выполняет оценку машин и выдает котировки.
// Котировки живут в Redis до истечения TTL: повторный запрос с теми же
// параметрами машины возвращает уже выданную котировку.
type AppraisalService struct {
	redis    appraisalRedis
	log      *logger.Logger
	quoteTTL time.Duration
}

type appraisalRedis interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
}

// NewAppraisalService создает сервис оценки.
func NewAppraisalService(redisClient *redis.Client, log *logger.Logger, cfg *config.AppraisalConfig) *AppraisalService {
	quoteTTL := defaultQuoteTTL
	if cfg != nil && cfg.QuoteTTLMinutes > 0 {
		quoteTTL = time.Duration(cfg.QuoteTTLMinutes) * time.Minute
	}

	s := &AppraisalService{
		log:      log,
		quoteTTL: quoteTTL,
	}
	if redisClient != nil {
		s.redis = redisClient
	}

	return s
}

// AppraiseCar считает цену перепродажи и выдает котировку
func (s *AppraisalService) AppraiseCar(ctx context.Context, req *models.AppraisalRequest) (*models.Appraisal, error) {
	car := valuation.CarInput{
		PurchaseValue:          req.PurchaseValue,
		AgeInMonths:            req.AgeInMonths,
		NumberOfMiles:          req.NumberOfMiles,
		NumberOfPreviousOwners: req.NumberOfPreviousOwners,
		NumberOfCollisions:     req.NumberOfCollisions,
	}
	if err := car.Validate(); err != nil {
		return nil, err
	}

	// Повторный запрос тех же параметров возвращает уже выданную котировку
	fingerprintKey := s.buildFingerprintKey(req)
	var cached models.Appraisal
	if s.tryGetFromCache(ctx, fingerprintKey, &cached) {
		return &cached, nil
	}

	value, err := valuation.DeterminePrice(car)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	appraisal := &models.Appraisal{
		ID:                     uuid.New(),
		PurchaseValue:          req.PurchaseValue,
		AgeInMonths:            req.AgeInMonths,
		NumberOfMiles:          req.NumberOfMiles,
		NumberOfPreviousOwners: req.NumberOfPreviousOwners,
		NumberOfCollisions:     req.NumberOfCollisions,
		AppraisedValue:         value.Round(2),
		CreatedAt:              now,
		ExpiresAt:              now.Add(s.quoteTTL),
	}

	s.saveToCache(ctx, fingerprintKey, appraisal)
	s.saveToCache(ctx, redis.GenerateKey(redis.KeyPrefixAppraisal, appraisal.ID.String()), appraisal)

	s.log.WithFields(map[string]interface{}{
		"appraisal_id":    appraisal.ID,
		"appraised_value": appraisal.AppraisedValue,
	}).Info("Car appraised successfully")

	return appraisal, nil
}

// GetAppraisal возвращает ранее выданную котировку по идентификатору
func (s *AppraisalService) GetAppraisal(ctx context.Context, id uuid.UUID) (*models.Appraisal, error) {
	var appraisal models.Appraisal
	key := redis.GenerateKey(redis.KeyPrefixAppraisal, id.String())
	if !s.tryGetFromCache(ctx, key, &appraisal) {
		return nil, apperror.NotFound("appraisal not found or expired", nil)
	}

	return &appraisal, nil
}

// buildFingerprintKey строит ключ из параметров машины. Строковая форма
// decimal не зависит от масштаба, поэтому 35000 и 35000.00 дают один ключ.
func (s *AppraisalService) buildFingerprintKey(req *models.AppraisalRequest) string {
	return redis.GenerateKey(redis.KeyPrefixFingerprint, fmt.Sprintf(
		"%s:%d:%d:%d:%d",
		req.PurchaseValue.String(),
		req.AgeInMonths,
		req.NumberOfMiles,
		req.NumberOfPreviousOwners,
		req.NumberOfCollisions,
	))
}

func (s *AppraisalService) tryGetFromCache(ctx context.Context, key string, dest interface{}) bool {
	if s.redis == nil {
		return false
	}

	if err := s.redis.Get(ctx, key, dest); err != nil {
		return false
	}
	return true
}

func (s *AppraisalService) saveToCache(ctx context.Context, key string, value interface{}) {
	if s.redis == nil {
		return
	}

	if err := s.redis.Set(ctx, key, value, s.quoteTTL); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Failed to cache appraisal")
	}
}
