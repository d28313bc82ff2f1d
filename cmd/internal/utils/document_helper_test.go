package utils

import "testing"

func TestIsCPFValid(t *testing.T) {
	tests := []struct {
		cpf  string
		want bool
	}{
		{"52998224725", true},
		{"52998224724", false},
		{"11111111111", false},
		{"529.982.247-25", false},
		{"5299822472", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsCPFValid(tt.cpf); got != tt.want {
			t.Errorf("IsCPFValid(%q) = %v, want %v", tt.cpf, got, tt.want)
		}
	}
}

func TestOnlyDigits(t *testing.T) {
	if got := OnlyDigits("(11) 9.8-7/6 a"); got != "119876" {
		t.Errorf("OnlyDigits = %q", got)
	}
	if IsOnlyNumbers("") || IsOnlyNumbers("12a") || !IsOnlyNumbers("0123") {
		t.Error("IsOnlyNumbers misbehaves")
	}
}

func TestSanitize(t *testing.T) {
	nick := "  neo "
	req := struct {
		Name  string
		Nick  *string
		Tags  []string
		Count int
	}{
		Name:  "  Rota 1\t",
		Nick:  &nick,
		Tags:  []string{" a ", "b "},
		Count: 3,
	}

	Sanitize(&req)

	if req.Name != "Rota 1" || *req.Nick != "neo" || req.Tags[0] != "a" || req.Tags[1] != "b" {
		t.Errorf("Sanitize left spaces: %+v (nick %q)", req, *req.Nick)
	}
}
