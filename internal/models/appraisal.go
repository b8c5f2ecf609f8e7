package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppraisalRequest представляет запрос на оценку машины
type AppraisalRequest struct {
	PurchaseValue          decimal.Decimal `json:"purchase_value"`
	AgeInMonths            int             `json:"age_in_months"`
	NumberOfMiles          int             `json:"number_of_miles"`
	NumberOfPreviousOwners int             `json:"number_of_previous_owners"`
	NumberOfCollisions     int             `json:"number_of_collisions"`
}

// Appraisal представляет готовую оценку машины в системе
type Appraisal struct {
	ID                     uuid.UUID       `json:"id"`
	PurchaseValue          decimal.Decimal `json:"purchase_value"`
	AgeInMonths            int             `json:"age_in_months"`
	NumberOfMiles          int             `json:"number_of_miles"`
	NumberOfPreviousOwners int             `json:"number_of_previous_owners"`
	NumberOfCollisions     int             `json:"number_of_collisions"`
	AppraisedValue         decimal.Decimal `json:"appraised_value"`
	CreatedAt              time.Time       `json:"created_at"`
	ExpiresAt              time.Time       `json:"expires_at"`
}
