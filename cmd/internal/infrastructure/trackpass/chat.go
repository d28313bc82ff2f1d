package trackpass

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// Chat asks the assistant bot. The answer may come as a plain string, a JSON
// string or an object with the text under one of several keys.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	data, err := c.do(ctx, http.MethodGet, "/chat", url.Values{"mensagem": {message}}, nil)
	if err != nil {
		return "", err
	}

	raw := strings.TrimSpace(string(data))
	if !gjson.Valid(raw) {
		return raw, nil
	}

	parsed := gjson.Parse(raw)
	if parsed.Type == gjson.String {
		return parsed.Str, nil
	}

	if parsed.IsObject() {
		if v, ok := (fields{parsed}).pick("resposta", "mensagem", "message", "answer"); ok {
			return v.String(), nil
		}
	}
	return "", nil
}
