package trackpass

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"trackpass/cmd/internal/utils/apierror"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/tidwall/gjson"
)

const (
	DefaultTimeout  = 15 * time.Second
	HeaderRequestID = "X-Request-Id"
)

// TokenSource yields the bearer token to attach to the next request.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string {
	return f()
}

// Client performs one HTTP call per method against the TrackPass backend.
// It never retries, caches or batches: failures are logged and returned.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tokens == nil {
		tokens = TokenFunc(func() string { return "" })
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
	}
}

// do sends one request and returns the raw body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	op := method + " " + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encode payload: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("trackpass %s failed: %v", op, err)
		return nil, apierror.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("trackpass %s: failed to read body: %v", op, err)
		return nil, apierror.NewNetworkError(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := apierror.FromStatus(op, resp.StatusCode, data)
		log.Errorf("trackpass %s failed: %v", op, rerr)
		return nil, rerr
	}
	return data, nil
}

// getList reads a collection. Bodies that are not JSON arrays yield an empty slice.
func getList[T any](ctx context.Context, c *Client, path string, query url.Values, decode func(fields) T) ([]T, error) {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(data, decode), nil
}

// getOne reads a single object, treating an empty or non-object body as not found.
func getOne[T any](ctx context.Context, c *Client, path string, decode func(fields) T) (T, error) {
	var zero T
	data, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return zero, err
	}

	f, ok := parseObject(data)
	if !ok {
		return zero, notFound(http.MethodGet + " " + path)
	}
	return decode(f), nil
}

// send issues a mutation and returns the response object, if the backend sent one.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload any) (fields, bool, error) {
	data, err := c.do(ctx, method, path, query, payload)
	if err != nil {
		return fields{}, false, err
	}
	f, ok := parseObject(data)
	return f, ok, nil
}

func decodeList[T any](data []byte, decode func(fields) T) []T {
	items := collection(data)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !item.IsObject() {
			continue
		}
		out = append(out, decode(fields{item}))
	}
	return out
}

func collection(data []byte) []gjson.Result {
	if !gjson.ValidBytes(data) {
		return nil
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil
	}
	return parsed.Array()
}

func parseObject(data []byte) (fields, bool) {
	if len(bytes.TrimSpace(data)) == 0 || !gjson.ValidBytes(data) {
		return fields{}, false
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsObject() {
		return fields{}, false
	}
	return fields{parsed}, true
}

func notFound(op string) *apierror.RemoteError {
	return &apierror.RemoteError{
		Kind:    apierror.KindValidation,
		Status:  http.StatusNotFound,
		Message: "Registro não encontrado",
		Op:      op,
	}
}

func idPath(format string, ids ...int64) string {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return fmt.Sprintf(format, args...)
}
