package handlers

import (
	"context"

	"carprice-system/internal/models"

	"github.com/google/uuid"
)

// ----- Appraisals -----

type AppraisalService interface {
	AppraiseCar(ctx context.Context, req *models.AppraisalRequest) (*models.Appraisal, error)
	GetAppraisal(ctx context.Context, id uuid.UUID) (*models.Appraisal, error)
}

type EventProducer interface {
	PublishAppraisalCompleted(appraisal *models.Appraisal) error
}

// ----- Health -----

type RedisHealth interface {
	Health(ctx context.Context) error
}
