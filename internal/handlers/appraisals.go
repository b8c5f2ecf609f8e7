package handlers

import (
	"encoding/json"
	"net/http"

	"carprice-system/internal/logger"
	"carprice-system/internal/models"
)

// AppraisalHandler обрабатывает оценку автомобилей.
type AppraisalHandler struct {
	appraisalService AppraisalService
	producer         EventProducer
	log              *logger.Logger
}

// NewAppraisalHandler создаёт новый обработчик оценок.
func NewAppraisalHandler(appraisalService AppraisalService, producer EventProducer, log *logger.Logger) *AppraisalHandler {
	return &AppraisalHandler{
		appraisalService: appraisalService,
		producer:         producer,
		log:              log,
	}
}

// CreateAppraisal принимает параметры автомобиля и возвращает котировку.
func (h *AppraisalHandler) CreateAppraisal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.AppraisalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	appraisal, err := h.appraisalService.AppraiseCar(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to appraise car")
		return
	}

	// Публикуем событие в Kafka
	if err := h.producer.PublishAppraisalCompleted(appraisal); err != nil {
		h.log.WithError(err).Error("Failed to publish appraisal completed event")
		// Не возвращаем ошибку клиенту, котировка уже выдана
	}

	h.log.WithField("appraisal_id", appraisal.ID).Info("Appraisal created successfully")
	writeJSONResponse(w, http.StatusCreated, appraisal)
}

// GetAppraisal возвращает ранее выданную котировку по ID.
func (h *AppraisalHandler) GetAppraisal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	appraisalID, err := extractUUIDFromPath(r.URL.Path, "/api/appraisals/")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid appraisal ID")
		return
	}

	appraisal, err := h.appraisalService.GetAppraisal(r.Context(), appraisalID)
	if err != nil {
		writeServiceError(w, h.log, err, "Failed to get appraisal")
		return
	}

	writeJSONResponse(w, http.StatusOK, appraisal)
}
