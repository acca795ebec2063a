package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LooseNumber числовое поле из формы, которое может прийти числом, строкой,
// пустой строкой или null. Сырое значение сохраняется как есть, разбор
// выполняется при сборке настроек.
type LooseNumber struct {
	Raw   string
	IsSet bool
}

// NewLooseNumber удобен в тестах
func NewLooseNumber(raw string) LooseNumber {
	return LooseNumber{Raw: raw, IsSet: true}
}

// UnmarshalJSON принимает число, строку, bool или null
func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = LooseNumber{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = LooseNumber{Raw: s, IsSet: true}
		return nil
	}
	*n = LooseNumber{Raw: string(data), IsSet: true}
	return nil
}

// MarshalJSON возвращает сырое значение строкой
func (n LooseNumber) MarshalJSON() ([]byte, error) {
	if !n.IsSet {
		return []byte("null"), nil
	}
	return json.Marshal(n.Raw)
}

// IsBlank true для отсутствующего, null или пустого значения
func (n LooseNumber) IsBlank() bool {
	return !n.IsSet || strings.TrimSpace(n.Raw) == ""
}

// Float парсит значение, ok=false для пустого или некорректного.
// NaN и бесконечности считаются некорректными: их нельзя сохранить в JSON.
func (n LooseNumber) Float() (float64, bool) {
	if n.IsBlank() {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(n.Raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Int парсит целое значение. Дробное число ("2.9") некорректно, ok=false,
// и вызывающий код подставляет значение по умолчанию. "3.0" принимается как 3.
func (n LooseNumber) Int() (int, bool) {
	v, ok := n.Float()
	if !ok || v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, false
	}
	return int(v), true
}

// LooseBool флаг из формы: true/false, "true"/"false", "on", "1"/"0"
type LooseBool struct {
	Value bool
	IsSet bool
}

// NewLooseBool удобен в тестах
func NewLooseBool(v bool) LooseBool {
	return LooseBool{Value: v, IsSet: true}
}

// UnmarshalJSON принимает bool, строку, число или null
func (b *LooseBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = LooseBool{}
		return nil
	}
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = LooseBool{Value: v, IsSet: true}
		return nil
	}
	raw := string(data)
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		raw = s
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "on", "yes":
		*b = LooseBool{Value: true, IsSet: true}
	case "false", "0", "off", "no":
		*b = LooseBool{Value: false, IsSet: true}
	default:
		*b = LooseBool{}
	}
	return nil
}

// Or возвращает значение или def, если флаг не передан
func (b LooseBool) Or(def bool) bool {
	if !b.IsSet {
		return def
	}
	return b.Value
}
