package models

import "errors"

var (
	// ErrValidation - тело запроса не прошло проверку (type или prompt отсутствует/пуст).
	ErrValidation = errors.New("validation error")
	// ErrPersistence - хранилище недоступно или отклонило запись.
	ErrPersistence = errors.New("persistence error")
)
