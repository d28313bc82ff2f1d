package validators

import (
	"strings"
	"testing"
)

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"Senha@123", true},
		{"senha@123", false},
		{"SENHA@123", false},
		{"Senha@abc", false},
		{"Senha1234", false},
		{"Se@1", false},
		{"Aa1@" + strings.Repeat("a", 61), false},
	}

	for _, tt := range tests {
		if got := IsStrongPassword(tt.password); got != tt.want {
			t.Errorf("IsStrongPassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestCustomTags(t *testing.T) {
	type form struct {
		UF       string  `validate:"uf"`
		CPF      string  `validate:"cpf"`
		Phone    string  `validate:"digits"`
		Points   []int64 `validate:"nodupes"`
		Password string  `validate:"password"`
	}

	validate := New()

	valid := form{UF: "SP", CPF: "529.982.247-25", Phone: "(11) 98765-4321", Points: []int64{1, 2, 3}, Password: "Senha@123"}
	if err := validate.Struct(&valid); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	tests := []struct {
		name string
		mod  func(f *form)
	}{
		{"lowercase uf", func(f *form) { f.UF = "sp" }},
		{"long uf", func(f *form) { f.UF = "SPA" }},
		{"bad cpf", func(f *form) { f.CPF = "529.982.247-24" }},
		{"letters in phone", func(f *form) { f.Phone = "11 9abc" }},
		{"duplicated points", func(f *form) { f.Points = []int64{1, 2, 1} }},
		{"weak password", func(f *form) { f.Password = "senha" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mod(&f)
			if err := validate.Struct(&f); err == nil {
				t.Errorf("%s should fail validation", tt.name)
			}
		})
	}
}
