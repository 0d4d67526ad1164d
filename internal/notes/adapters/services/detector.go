package services

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"deltanote/internal/notes/domain/entities"
	"deltanote/internal/notes/ports/services"
	"deltanote/pkg/logger"
)

// Пороги уверенности по количеству слов. Короткий текст классифицируется
// с заниженной уверенностью вместо ошибки.
const (
	confidenceEmpty  = 0.0
	confidenceShort  = 0.3
	confidenceMedium = 0.5
	confidenceLong   = 0.8

	shortTextWords  = 5
	mediumTextWords = 10
)

// Сообщения логгера.
const (
	msgDetectingLanguage = "detecting language"
	msgLanguageDetected  = "language detected"
)

// stopwords - частотные служебные слова по языкам.
var stopwords = map[string][]string{
	"en": {"the", "and", "is", "are", "was", "were", "of", "to", "in", "that", "it", "for", "with", "this", "not", "have"},
	"es": {"el", "la", "los", "las", "de", "que", "y", "es", "en", "un", "una", "por", "con", "para", "no", "se"},
	"fr": {"le", "la", "les", "de", "des", "et", "est", "en", "un", "une", "que", "pour", "dans", "pas", "sur", "ce"},
	"de": {"der", "die", "das", "und", "ist", "ich", "nicht", "ein", "eine", "zu", "mit", "auf", "für", "von", "den", "sich"},
	"it": {"il", "la", "di", "che", "e", "un", "una", "per", "non", "sono", "con", "del", "le", "si", "da", "in"},
	"pt": {"o", "a", "os", "as", "de", "que", "e", "um", "uma", "para", "não", "com", "do", "da", "em", "se"},
}

// HeuristicDetector реализует интерфейс LanguageDetector без внешнего
// сервиса: проверка письменности, затем подсчет служебных слов.
type HeuristicDetector struct{}

// NewHeuristicDetector создает новый детектор языка.
func NewHeuristicDetector() services.LanguageDetector {
	return &HeuristicDetector{}
}

// Detect определяет язык текста. Никогда не возвращает ошибку:
// неклассифицируемый текст получает код "undetected".
func (d *HeuristicDetector) Detect(ctx context.Context, text string) (services.Detection, error) {
	log := logger.Log(ctx).With(zap.String("method", "HeuristicDetector.Detect"))
	log.Debug(ctx, msgDetectingLanguage, zap.Int("text_len", len(text)))

	words := strings.Fields(text)
	if len(words) == 0 {
		return services.Detection{Language: entities.LanguageUndetected, Confidence: confidenceEmpty}, nil
	}

	language := detectByScript(text)
	if language == "" {
		language = detectByStopwords(words)
	}
	if language == "" {
		language = entities.LanguageUndetected
	}

	detection := services.Detection{
		Language:   language,
		Confidence: confidenceForWordCount(len(words)),
	}

	log.Debug(ctx, msgLanguageDetected,
		zap.String("language", detection.Language),
		zap.Float64("confidence", detection.Confidence))
	return detection, nil
}

// confidenceForWordCount возвращает уверенность по полосам длины текста.
func confidenceForWordCount(count int) float64 {
	switch {
	case count < shortTextWords:
		return confidenceShort
	case count < mediumTextWords:
		return confidenceMedium
	default:
		return confidenceLong
	}
}

// detectByScript распознает языки с характерной письменностью.
func detectByScript(text string) string {
	for _, r := range text {
		switch {
		case unicode.In(r, unicode.Cyrillic):
			return "ru"
		case unicode.In(r, unicode.Han):
			return "zh"
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			return "ja"
		case unicode.In(r, unicode.Hangul):
			return "ko"
		case unicode.In(r, unicode.Arabic):
			return "ar"
		case unicode.In(r, unicode.Hebrew):
			return "he"
		case unicode.In(r, unicode.Greek):
			return "el"
		}
	}
	return ""
}

// detectByStopwords выбирает язык с наибольшим числом совпадений
// служебных слов.
func detectByStopwords(words []string) string {
	lowered := make(map[string]int, len(words))
	for _, w := range words {
		lowered[strings.ToLower(strings.Trim(w, ".,!?;:\"'()"))]++
	}

	best := ""
	bestScore := 0
	for language, list := range stopwords {
		score := 0
		for _, sw := range list {
			score += lowered[sw]
		}
		if score > bestScore {
			best = language
			bestScore = score
		}
	}
	return best
}
