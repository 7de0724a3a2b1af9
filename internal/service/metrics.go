package service

import (
	"content-server/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	generationOutcomeSuccess          = "success"
	generationOutcomeFailed           = "fallback"
	generationOutcomePersistenceError = "persistence_error"
)

var generationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "content_server_generations_created_total",
		Help: "Total number of create requests by task type and outcome.",
	},
	[]string{"type", "outcome"},
)

// typeLabel ограничивает метку type известными категориями.
func typeLabel(taskType string) string {
	if models.TaskType(taskType).IsKnown() {
		return taskType
	}
	return "other"
}
