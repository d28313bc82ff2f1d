package trackpass

import (
	"strings"
	"time"
	"trackpass/cmd/internal/utils"

	"github.com/tidwall/gjson"
)

// fields wraps a backend JSON object. The backend names the same concept
// differently across endpoints (idPonto, id_ponto, id...), so every read
// probes a fixed list of aliases and takes the first one present. This is the
// only place aliases are known; everything above this package sees entities.
type fields struct {
	gjson.Result
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (f fields) pick(keys ...string) (gjson.Result, bool) {
	for _, key := range keys {
		if v := f.Get(key); v.Exists() && v.Type != gjson.Null {
			return v, true
		}
	}
	return gjson.Result{}, false
}

func (f fields) has(keys ...string) bool {
	_, ok := f.pick(keys...)
	return ok
}

func (f fields) setInt64(dst *int64, keys ...string) {
	if v, ok := f.pick(keys...); ok {
		*dst = v.Int()
	}
}

func (f fields) setInt(dst *int, keys ...string) {
	if v, ok := f.pick(keys...); ok {
		*dst = int(v.Int())
	}
}

func (f fields) setFloat(dst *float64, keys ...string) {
	if v, ok := f.pick(keys...); ok {
		*dst = v.Float()
	}
}

func (f fields) setString(dst *string, keys ...string) {
	if v, ok := f.pick(keys...); ok {
		*dst = strings.TrimSpace(v.String())
	}
}

func (f fields) setUpper(dst *string, keys ...string) {
	if v, ok := f.pick(keys...); ok {
		*dst = strings.ToUpper(strings.TrimSpace(v.String()))
	}
}

func (f fields) setActive(dst *bool, keys ...string) {
	if v, ok := f.pick(keys...); ok {
		*dst = utils.NormalizeActive(v)
	}
}

func (f fields) setBool(dst *bool, keys ...string) {
	if v, ok := f.pick(keys...); ok {
		*dst = v.Bool()
	}
}

func (f fields) setTime(dst *time.Time, keys ...string) {
	if v, ok := f.pick(keys...); ok {
		if t, ok := parseTime(v.String()); ok {
			*dst = t
		}
	}
}

func (f fields) setTimePtr(dst **time.Time, keys ...string) {
	if v, ok := f.pick(keys...); ok {
		if t, ok := parseTime(v.String()); ok {
			*dst = &t
		}
	}
}

func (f fields) objects(keys ...string) ([]fields, bool) {
	v, ok := f.pick(keys...)
	if !ok || !v.IsArray() {
		return nil, ok
	}

	var out []fields
	for _, item := range v.Array() {
		if item.IsObject() {
			out = append(out, fields{item})
		}
	}
	return out, true
}

func (f fields) object(keys ...string) (fields, bool) {
	v, ok := f.pick(keys...)
	if !ok || !v.IsObject() {
		return fields{}, false
	}
	return fields{v}, true
}

func parseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
