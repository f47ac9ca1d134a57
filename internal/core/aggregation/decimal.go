package aggregation

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ExtractDecimal pulls a numeric value from an event payload by field name.
// Returns decimal.Zero if the field is missing, empty, or not a recognized numeric type:
// events unrelated to a metric legitimately lack its field.
// Payloads decoded with UseNumber carry json.Number, which is parsed exactly; float64
// only shows up for payloads built in code.
func ExtractDecimal(data map[string]interface{}, field string) decimal.Decimal {
	if field == "" {
		return decimal.Zero
	}
	v, ok := data[field]
	if !ok || v == nil {
		return decimal.Zero
	}
	switch val := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err == nil {
			return d
		}
	case string:
		d, err := decimal.NewFromString(val)
		if err == nil {
			return d
		}
	case decimal.Decimal:
		return val
	case float64:
		return decimal.NewFromFloat(val)
	case float32:
		return decimal.NewFromFloat(float64(val))
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case int32:
		return decimal.NewFromInt(int64(val))
	}
	return decimal.Zero
}

// ExtractString returns the string form of a payload field, or "" when absent.
func ExtractString(data map[string]interface{}, field string) string {
	v, ok := data[field]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return ""
	}
}
