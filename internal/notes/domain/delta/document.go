// Package delta реализует конвертацию rich-text документа между
// представлением в памяти, delta JSON и плоским текстом.
package delta

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDelta возвращается, когда строка не является корректным
// delta JSON. Частично разобранный документ при этом не возвращается.
var ErrInvalidDelta = errors.New("invalid delta document")

// Op - одна операция вставки с необязательными атрибутами форматирования.
type Op struct {
	Insert     string
	Attributes map[string]any
}

// Document - упорядоченная последовательность операций вставки.
type Document struct {
	ops []Op
}

// New создает документ из готовых операций.
func New(ops ...Op) *Document {
	return &Document{ops: ops}
}

// FromPlainText создает документ с единственной неформатированной
// вставкой, содержащей text дословно. Работает и для пустой строки.
func FromPlainText(text string) *Document {
	return &Document{ops: []Op{{Insert: text}}}
}

// rawOp - промежуточная форма для строгого разбора операции.
type rawOp struct {
	Insert     json.RawMessage `json:"insert"`
	Attributes json.RawMessage `json:"attributes"`
}

// envelope - форма {"ops":[...]}, которую сохраняет мобильный клиент.
type envelope struct {
	Ops *[]rawOp `json:"ops"`
}

// FromJSON разбирает delta JSON в документ. Принимает как чистый массив
// операций, так и форму {"ops":[...]}. Любое нарушение схемы (не JSON,
// не тот контейнер, insert не строка, attributes не объект) дает
// ErrInvalidDelta без частичного результата.
func FromJSON(data string) (*Document, error) {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidDelta)
	}

	var raws []rawOp
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal([]byte(trimmed), &raws); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDelta, err)
		}
	case '{':
		var env envelope
		if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDelta, err)
		}
		if env.Ops == nil {
			return nil, fmt.Errorf("%w: missing ops array", ErrInvalidDelta)
		}
		raws = *env.Ops
	default:
		return nil, fmt.Errorf("%w: expected array or object", ErrInvalidDelta)
	}

	ops := make([]Op, 0, len(raws))
	for i, raw := range raws {
		op, err := raw.toOp()
		if err != nil {
			return nil, fmt.Errorf("%w: op %d: %w", ErrInvalidDelta, i, err)
		}
		ops = append(ops, op)
	}

	return &Document{ops: ops}, nil
}

// toOp проверяет типы полей операции.
func (r rawOp) toOp() (Op, error) {
	if r.Insert == nil {
		return Op{}, errors.New("missing insert field")
	}

	var insert string
	if err := json.Unmarshal(r.Insert, &insert); err != nil {
		return Op{}, fmt.Errorf("insert is not a string: %w", err)
	}

	op := Op{Insert: insert}
	if r.Attributes != nil {
		var attrs map[string]any
		if err := json.Unmarshal(r.Attributes, &attrs); err != nil {
			return Op{}, fmt.Errorf("attributes is not an object: %w", err)
		}
		op.Attributes = attrs
	}

	return op, nil
}

// JSON сериализует документ в массив операций.
func (d *Document) JSON() (string, error) {
	raws := make([]map[string]any, 0, len(d.ops))
	for _, op := range d.ops {
		raw := map[string]any{"insert": op.Insert}
		if op.Attributes != nil {
			raw["attributes"] = op.Attributes
		}
		raws = append(raws, raw)
	}

	encoded, err := json.Marshal(raws)
	if err != nil {
		return "", fmt.Errorf("failed to encode delta document: %w", err)
	}
	return string(encoded), nil
}

// PlainText склеивает текст всех вставок, отбрасывая форматирование.
// Переводы строк внутри текста сохраняются.
func (d *Document) PlainText() string {
	var b strings.Builder
	for _, op := range d.ops {
		b.WriteString(op.Insert)
	}
	return b.String()
}

// IsEmpty сообщает, пуст ли документ после обрезки пробельных символов.
func (d *Document) IsEmpty() bool {
	return strings.TrimSpace(d.PlainText()) == ""
}

// Ops возвращает копию последовательности операций.
func (d *Document) Ops() []Op {
	ops := make([]Op, len(d.ops))
	copy(ops, d.ops)
	return ops
}

// Len возвращает количество операций в документе.
func (d *Document) Len() int {
	return len(d.ops)
}

// DeriveTitle возвращает первую непустую строку плоского текста,
// усеченную до max рун. Используется, когда заголовок не задан.
func DeriveTitle(d *Document, max int) string {
	for _, line := range strings.Split(d.PlainText(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > max {
			return string(runes[:max])
		}
		return line
	}
	return ""
}
