package apierror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", ``, ""},
		{"plain text", `Rota não encontrada`, "Rota não encontrada"},
		{"json string", `"Cidade já cadastrada"`, "Cidade já cadastrada"},
		{"message wins over detail", `{"message":"m","detail":"d"}`, "m"},
		{"blank message falls to detail", `{"message":"  ","detail":"d"}`, "d"},
		{"detail", `{"detail":"Capacidade inválida"}`, "Capacidade inválida"},
		{"errors map", `{"errors":{"nome":"obrigatório","uf":["inválida","curta"]}}`, "obrigatório; inválida; curta"},
		{"errors list", `{"errors":[{"field":"nome","defaultMessage":"não pode ser vazio"}]}`, "não pode ser vazio"},
		{"message before errors", `{"message":"Dados inválidos","errors":{"nome":"x"}}`, "Dados inválidos"},
		{"array body", `[1,2]`, ""},
		{"object without text", `{"status":400}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("ExtractMessage(%s) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{401, KindUnauthorized},
		{403, KindUnauthorized},
		{400, KindValidation},
		{404, KindValidation},
		{422, KindValidation},
		{500, KindServer},
		{503, KindServer},
	}

	for _, tt := range tests {
		err := FromStatus("GET /rotas", tt.status, []byte(`{"message":"falhou"}`))
		if err.Kind != tt.want || err.Status != tt.status || err.Message != "falhou" {
			t.Errorf("FromStatus(%d) = %+v, want kind %s", tt.status, err, tt.want)
		}
	}
}

func TestRemoteErrorFormatting(t *testing.T) {
	err := FromStatus("POST /cidades", 422, []byte(`{"message":"UF inválida"}`))
	if got := err.Error(); got != "POST /cidades: validation (422): UF inválida" {
		t.Errorf("Error() = %q", got)
	}

	cause := errors.New("dial tcp: connection refused")
	netErr := NewNetworkError("GET /rotas", cause)
	if !errors.Is(netErr, cause) || KindOf(netErr) != KindNetwork {
		t.Errorf("network error should wrap its cause: %v", netErr)
	}

	pre := NewPreconditionError("Ponto %d fora do trajeto", 7)
	if pre.Message != "Ponto 7 fora do trajeto" || !errors.Is(pre, ErrPrecondition) {
		t.Errorf("unexpected precondition error: %+v", pre)
	}
	if KindOf(errors.New("other")) != "" {
		t.Error("plain errors have no kind")
	}
}

func TestFromRemote(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"network", NewNetworkError("GET /rotas", errors.New("timeout")), http.StatusBadGateway},
		{"unauthorized", FromStatus("GET /rotas", 401, nil), http.StatusUnauthorized},
		{"forbidden", FromStatus("GET /rotas", 403, nil), http.StatusForbidden},
		{"validation", FromStatus("POST /rotas", 422, []byte(`{"message":"Nome obrigatório"}`)), 422},
		{"precondition", NewPreconditionError("Confirme"), http.StatusPreconditionFailed},
		{"server", FromStatus("GET /rotas", 500, nil), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromRemote(tt.err).Code(); got != tt.code {
				t.Errorf("FromRemote(%v).Code() = %d, want %d", tt.err, got, tt.code)
			}
		})
	}

	resp := FromRemote(FromStatus("POST /rotas", 422, []byte(`{"message":"Nome obrigatório"}`)))
	if apiErr, ok := resp.(*APIError); !ok || apiErr.Message != "Nome obrigatório" {
		t.Errorf("validation response should carry the backend message, got %+v", resp)
	}
}

func TestFromValidationError(t *testing.T) {
	type form struct {
		Name     string `validate:"required"`
		Capacity int    `validate:"min=1"`
	}

	err := validator.New().Struct(&form{})
	resp := FromValidationError(err)
	if resp == nil || resp.Code() != http.StatusBadRequest {
		t.Fatalf("FromValidationError() = %+v", resp)
	}
	if len(resp.Errors["name"]) != 1 || len(resp.Errors["capacity"]) != 1 {
		t.Errorf("unexpected problems: %+v", resp.Errors)
	}

	if FromValidationError(errors.New("not a validation error")) != nil {
		t.Error("non validation errors should give nil")
	}
}
