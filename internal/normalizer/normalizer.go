// Package normalizer turns the engine's untyped extraction payload into the
// typed ExtractedDealData record. Normalization is total: individual fields
// that fail to coerce are dropped, the function itself never fails.
package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"dealdesk/internal/domain"
)

// dateLayouts are tried in order when parsing date-bearing fields.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

// Normalize converts an untyped payload map into ExtractedDealData.
func Normalize(payload map[string]any) *domain.ExtractedDealData {
	data := &domain.ExtractedDealData{}
	if payload == nil {
		return data
	}

	for rawKey, raw := range payload {
		key := canonicalKey(rawKey)
		switch {
		case numericFields[key] != nil:
			if v, ok := coerceNumber(raw); ok {
				numericFields[key](data, v)
			}
		case dateFields[key] != nil:
			if v, ok := coerceDate(raw); ok {
				dateFields[key](data, v)
			}
		case scalarFields[key] != nil:
			if s, ok := raw.(string); ok && s != "" {
				scalarFields[key](data, s)
			}
		case stringListFields[key] != nil:
			if list := coerceStringList(raw); len(list) > 0 {
				stringListFields[key](data, list)
			}
		case key == keySeller:
			data.Seller = decodeAs[domain.PartyInfo](raw)
		case key == keyBuyer:
			data.Buyer = decodeAs[domain.PartyInfo](raw)
		case key == keyTarget:
			data.Target = decodeAs[domain.CompanyInfo](raw)
		case key == keyAdvisors:
			if advisors := decodeAs[[]domain.AdvisorInfo](raw); advisors != nil {
				data.Advisors = *advisors
			}
		case key == keyCustomFields:
			if m, ok := raw.(map[string]any); ok && len(m) > 0 {
				if data.Custom == nil {
					data.Custom = make(map[string]any, len(m))
				}
				for k, v := range m {
					data.Custom[k] = v
				}
			}
		default:
			// No canonical slot; keep it in the open-ended map under the
			// key the engine actually sent.
			if data.Custom == nil {
				data.Custom = make(map[string]any)
			}
			data.Custom[rawKey] = raw
		}
	}

	return data
}

// canonicalKey folds the engine's camelCase payload keys ("dealValue",
// "announcedDate") onto the snake_case table keys, so both spellings land in
// the same slot.
func canonicalKey(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// coerceNumber accepts JSON numbers and numeric strings. A string that does
// not parse to a finite float is dropped rather than stored as zero.
func coerceNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, !math.IsNaN(v) && !math.IsInf(v, 0)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// coerceDate parses ISO-8601 date strings.
func coerceDate(raw any) (time.Time, bool) {
	s, ok := raw.(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// coerceStringList keeps the string members of a JSON array.
func coerceStringList(raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// decodeAs copies a nested sub-record as-is via a marshal round trip. This is
// a trust boundary accepted at normalization time; shapes that do not decode
// are omitted.
func decodeAs[T any](raw any) *T {
	b, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return &out
}
