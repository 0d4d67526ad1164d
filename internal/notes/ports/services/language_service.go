package services

import "context"

// Detection - результат определения языка: ISO 639-1 код
// (или "undetected") и уверенность в диапазоне [0,1].
type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// LanguageDetector определяет интерфейс сервиса определения языка.
// Для слишком короткого текста реализация обязана вернуть результат
// с низкой уверенностью, а не ошибку.
type LanguageDetector interface {
	Detect(ctx context.Context, text string) (Detection, error)
}
