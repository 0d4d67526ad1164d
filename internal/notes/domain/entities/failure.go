package entities

import (
	"errors"
	"fmt"
)

// FailureKind - вид отказа операции.
type FailureKind string

// Виды отказов, возвращаемых на границе use case.
const (
	FailureValidation FailureKind = "validation"
	FailureDatabase   FailureKind = "database"
	FailureAuth       FailureKind = "auth"
	FailureUnknown    FailureKind = "unknown"
)

// Коды отказов уровня хранилища.
const (
	CodeNotFound  = "not_found"
	CodeDuplicate = "duplicate"
)

// Failure - структурированный отказ операции: вид, сообщение,
// машиночитаемый код и исходная причина.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Err     error       `json:"-"`
}

// Error реализует интерфейс error.
func (f *Failure) Error() string {
	if f.Code != "" {
		return fmt.Sprintf("%s failure [%s]: %s", f.Kind, f.Code, f.Message)
	}
	return fmt.Sprintf("%s failure: %s", f.Kind, f.Message)
}

// Unwrap возвращает исходную причину отказа.
func (f *Failure) Unwrap() error {
	return f.Err
}

// NewValidationFailure создает отказ валидации.
func NewValidationFailure(message string) *Failure {
	return &Failure{Kind: FailureValidation, Message: message}
}

// NewDatabaseFailure создает отказ хранилища с причиной.
func NewDatabaseFailure(message, code string, err error) *Failure {
	return &Failure{Kind: FailureDatabase, Message: message, Code: code, Err: err}
}

// NewAuthFailure создает отказ аутентификации.
func NewAuthFailure(message string, err error) *Failure {
	return &Failure{Kind: FailureAuth, Message: message, Err: err}
}

// NewUnknownFailure оборачивает непредвиденную ошибку с сохранением причины.
func NewUnknownFailure(err error) *Failure {
	return &Failure{Kind: FailureUnknown, Message: "unexpected error", Err: err}
}

// AsFailure нормализует произвольную ошибку в Failure.
// Не-Failure ошибки становятся отказами вида unknown.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}
	return NewUnknownFailure(err)
}

// IsNotFound сообщает, является ли ошибка отказом "не найдено".
func IsNotFound(err error) bool {
	failure := AsFailure(err)
	return failure != nil && failure.Kind == FailureDatabase && failure.Code == CodeNotFound
}
