package dto

import (
	"net/http"

	"deltanote/internal/notes/domain/entities"
)

// ErrorResponse - тело ответа при отказе операции.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// FromError строит тело ответа и HTTP статус по виду отказа.
// Неизвестные ошибки не просачиваются в тело ответа.
func FromError(err error) (int, ErrorResponse) {
	failure := entities.AsFailure(err)
	if failure == nil {
		return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
	}

	switch failure.Kind {
	case entities.FailureValidation:
		return http.StatusBadRequest, ErrorResponse{Error: failure.Message, Code: failure.Code}
	case entities.FailureAuth:
		return http.StatusUnauthorized, ErrorResponse{Error: failure.Message}
	case entities.FailureDatabase:
		switch failure.Code {
		case entities.CodeNotFound:
			return http.StatusNotFound, ErrorResponse{Error: failure.Message, Code: failure.Code}
		case entities.CodeDuplicate:
			return http.StatusConflict, ErrorResponse{Error: failure.Message, Code: failure.Code}
		default:
			return http.StatusInternalServerError, ErrorResponse{Error: failure.Message}
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
	}
}
