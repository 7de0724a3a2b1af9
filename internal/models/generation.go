package models

import (
	"encoding/json"
	"time"
)

// TaskType определяет категорию маркетингового контента.
// Хранится как свободный текст, но логически это перечисление.
type TaskType string

const (
	TaskTypeSEO     TaskType = "seo"     // SEO-тексты (заголовки, мета-описания)
	TaskTypeContent TaskType = "content" // Статьи для блога
	TaskTypeSocial  TaskType = "social"  // Посты для соцсетей
	TaskTypeAd      TaskType = "ad"      // Рекламные тексты
	TaskTypeEmail   TaskType = "email"   // Email-рассылки
)

// KnownTaskTypes возвращает список всех известных типов задач.
func KnownTaskTypes() []TaskType {
	return []TaskType{TaskTypeSEO, TaskTypeContent, TaskTypeSocial, TaskTypeAd, TaskTypeEmail}
}

// IsKnown проверяет, входит ли тип в закрытый набор категорий.
func (t TaskType) IsKnown() bool {
	for _, known := range KnownTaskTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Generation представляет сохраненную запись генерации.
// Записи неизменяемы: создаются один раз и только читаются.
type Generation struct {
	ID        int64           `json:"id" db:"id"`
	Type      string          `json:"type" db:"type"`
	Prompt    string          `json:"prompt" db:"prompt"`
	Content   json.RawMessage `json:"content" db:"content"`     // Документ от модели или fallback {error, details}
	CreatedAt *time.Time      `json:"createdAt" db:"created_at"` // Назначается БД при вставке
}

// NewGeneration содержит данные для вставки новой записи.
// ID и CreatedAt назначаются хранилищем.
type NewGeneration struct {
	Type    string
	Prompt  string
	Content json.RawMessage
	Failed  bool // Content - fallback-документ; учитывается в статистике, в API не отдается
}

// CreateGenerationInput - входные данные операции создания.
type CreateGenerationInput struct {
	Type   string `json:"type" validate:"required,notblank"`
	Prompt string `json:"prompt" validate:"required,notblank"`
}

// TypeCount - количество записей определенного типа.
type TypeCount struct {
	Type   string `db:"type"`
	Total  int64  `db:"total"`
	Failed int64  `db:"failed"`
}

// GenerationStats - агрегированная статистика по генерациям.
type GenerationStats struct {
	Total  int64            `json:"total"`
	Failed int64            `json:"failed"`
	ByType map[string]int64 `json:"byType"`
}
