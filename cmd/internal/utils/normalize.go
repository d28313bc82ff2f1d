package utils

import (
	"strings"

	"github.com/tidwall/gjson"
)

const activeLabel = "ATIVO"

// NormalizeActive turns the several shapes the backend uses for an "active"
// flag into a strict boolean: true, 1 and "ativo" in any casing are true,
// everything else is false.
func NormalizeActive(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val == 1
	case int64:
		return val == 1
	case float64:
		return val == 1
	case string:
		return strings.EqualFold(strings.TrimSpace(val), activeLabel)
	case gjson.Result:
		return normalizeActiveResult(val)
	default:
		return false
	}
}

func normalizeActiveResult(r gjson.Result) bool {
	switch r.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return r.Num == 1
	case gjson.String:
		return NormalizeActive(r.Str)
	default:
		return false
	}
}
