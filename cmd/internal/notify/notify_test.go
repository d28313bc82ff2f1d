package notify

import (
	"errors"
	"testing"
	"trackpass/cmd/internal/utils/apierror"
)

func TestMessageFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"network", apierror.NewNetworkError("GET /rotas", errors.New("refused")), MsgNetwork},
		{"unauthorized", apierror.FromStatus("GET /rotas", 401, nil), MsgUnauthorized},
		{"forbidden", apierror.FromStatus("GET /rotas", 403, nil), MsgUnauthorized},
		{"validation with message", apierror.FromStatus("POST /rotas", 400, []byte(`{"message":"Nome obrigatório"}`)), "Nome obrigatório"},
		{"validation without message", apierror.FromStatus("POST /rotas", 400, nil), "fallback"},
		{"precondition", apierror.NewPreconditionError("Confirme a exclusão"), "Confirme a exclusão"},
		{"server", apierror.FromStatus("GET /rotas", 500, []byte(`{"message":"NullPointerException"}`)), "fallback"},
		{"plain", errors.New("boom"), "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MessageFor(tt.err, "fallback"); got != tt.want {
				t.Errorf("MessageFor() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := MessageFor(errors.New("boom"), ""); got != MsgGeneric {
		t.Errorf("empty fallback should use the generic message, got %q", got)
	}
}

func TestFailureCarriesKind(t *testing.T) {
	n := Failure(apierror.FromStatus("GET /rotas", 401, nil), "x")
	if n.Level != LevelError || n.Kind != apierror.KindUnauthorized || n.ID == 0 {
		t.Errorf("unexpected notification: %+v", n)
	}

	if a, b := Success("a"), Success("b"); a.ID == b.ID {
		t.Error("notification ids must be unique")
	}
}

func TestFeedKeepsLatest(t *testing.T) {
	feed := NewFeed(2)
	feed.Notify(Success("1"))
	feed.Notify(Warning("2"))
	feed.Notify(Success("3"))

	if feed.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", feed.Len())
	}

	got := feed.Drain()
	if len(got) != 2 || got[0].Message != "2" || got[1].Message != "3" {
		t.Errorf("Drain() = %+v, want the two latest in order", got)
	}

	again := feed.Drain()
	if again == nil || len(again) != 0 {
		t.Errorf("second Drain() = %#v, want empty non-nil slice", again)
	}
}
