package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IBM/sarama"
)

type stubRedisHealth struct{ err error }

func (s *stubRedisHealth) Health(ctx context.Context) error { return s.err }

func TestHealthHandler_ReadinessOK(t *testing.T) {
	h := NewHealthHandler(&stubRedisHealth{}, []string{}, func([]string) error { return nil })
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/readiness", nil)

	h.Readiness(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestHealthHandler_Readiness_RedisError(t *testing.T) {
	h := NewHealthHandler(&stubRedisHealth{err: errors.New("redis down")}, []string{}, func([]string) error { return nil })
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/readiness", nil)

	h.Readiness(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestHealthHandler_Liveness(t *testing.T) {
	h := NewHealthHandler(&stubRedisHealth{}, []string{}, func([]string) error { return nil })
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/liveness", nil)

	h.Liveness(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestHealthHandler_Liveness_MethodNotAllowed(t *testing.T) {
	h := NewHealthHandler(&stubRedisHealth{}, []string{}, func([]string) error { return nil })
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/health/liveness", nil)
	h.Liveness(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestHealthHandler_Health_Unhealthy(t *testing.T) {
	h := NewHealthHandler(&stubRedisHealth{err: errors.New("redis down")}, []string{}, func([]string) error { return nil })
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	h.Health(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestHealthHandler_Health_KafkaDisabled(t *testing.T) {
	h := NewHealthHandler(&stubRedisHealth{}, nil, func([]string) error { return errors.New("must not be called") })
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	h.Health(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Services["kafka"] != "disabled" {
		t.Fatalf("expected kafka disabled, got %q", resp.Services["kafka"])
	}
	if resp.Status != "healthy" {
		t.Fatalf("expected healthy status, got %q", resp.Status)
	}
}

func TestHealthHandler_KafkaError(t *testing.T) {
	h := NewHealthHandler(&stubRedisHealth{}, []string{"kafka:9092"}, func([]string) error { return errors.New("kafka down") })

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/readiness", nil)
	h.Readiness(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	h := NewHealthHandler(&stubRedisHealth{}, []string{}, func([]string) error { return nil })
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	h.Health(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestCheckKafkaHealth_NoBrokers(t *testing.T) {
	if err := CheckKafkaHealth([]string{}); err == nil {
		t.Fatalf("expected error for empty brokers")
	}
}

func TestCheckKafkaHealth_WithMockBroker(t *testing.T) {
	broker := sarama.NewMockBroker(t, 1)
	defer broker.Close()

	broker.SetHandlerByMap(map[string]sarama.MockResponse{
		"MetadataRequest": sarama.NewMockMetadataResponse(t).
			SetBroker(broker.Addr(), broker.BrokerID()).
			SetController(broker.BrokerID()).
			SetLeader("health", 0, broker.BrokerID()),
	})

	if err := CheckKafkaHealth([]string{broker.Addr()}); err != nil {
		t.Fatalf("expected kafka health ok, got %v", err)
	}
}
