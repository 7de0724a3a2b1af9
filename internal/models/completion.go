package models

import (
	"encoding/json"
)

// Виды сбоев генерации. Попадают в поле "error" fallback-документа.
const (
	FailureTimeout         = "timeout"
	FailureNetwork         = "network_error"
	FailureUpstream        = "upstream_error"
	FailureEmptyResponse   = "empty_response"
	FailureInvalidResponse = "invalid_response"
	FailureClient          = "client_error"
)

// CompletionFailure описывает неудачную генерацию.
// Это данные, а не ошибка: запись все равно сохраняется.
type CompletionFailure struct {
	Kind    string `json:"error"`
	Details string `json:"details"`
}

// Completion - результат вызова модели: либо документ, либо сбой.
// Ровно одно из полей заполнено.
type Completion struct {
	Document json.RawMessage
	Failure  *CompletionFailure
}

// SucceededCompletion оборачивает успешно разобранный документ.
func SucceededCompletion(doc json.RawMessage) Completion {
	return Completion{Document: doc}
}

// FailedCompletion создает результат со сбоем указанного вида.
func FailedCompletion(kind, details string) Completion {
	return Completion{Failure: &CompletionFailure{Kind: kind, Details: details}}
}

// Failed сообщает, закончилась ли генерация сбоем.
func (c Completion) Failed() bool {
	return c.Failure != nil
}

// Content возвращает JSON, который сохраняется в поле content записи.
// Для сбоя это документ вида {"error": ..., "details": ...}.
func (c Completion) Content() json.RawMessage {
	if c.Failure != nil {
		data, _ := json.Marshal(c.Failure) // структура из двух строк всегда сериализуется
		return data
	}
	if len(c.Document) == 0 {
		return json.RawMessage(`{}`)
	}
	return c.Document
}
