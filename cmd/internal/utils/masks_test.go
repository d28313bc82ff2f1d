package utils

import (
	"testing"
	"trackpass/cmd/internal/domain/entity"
)

func TestApplyMask(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		raw     string
		want    string
	}{
		{"cpf", MaskCPF, "52998224725", "529.982.247-25"},
		{"cpf partial", MaskCPF, "1234", "123.4"},
		{"cpf extra digits", MaskCPF, "529982247251234", "529.982.247-25"},
		{"cpf already masked", MaskCPF, "529.982.247-25", "529.982.247-25"},
		{"rg", MaskRG, "123456789", "12.345.678-9"},
		{"landline", MaskPhone, "1133334444", "(11) 3333-4444"},
		{"mobile", MaskMobile, "11987654321", "(11) 98765-4321"},
		{"empty", MaskCPF, "", ""},
		{"no digits", MaskCPF, "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyMask(tt.pattern, tt.raw); got != tt.want {
				t.Errorf("ApplyMask(%q, %q) = %q, want %q", tt.pattern, tt.raw, got, tt.want)
			}
		})
	}
}

func TestMaskPhoneNumberPicksMobileMask(t *testing.T) {
	if got := MaskPhoneNumber("1133334444"); got != "(11) 3333-4444" {
		t.Errorf("landline = %q", got)
	}
	if got := MaskPhoneNumber("(11) 98765-4321"); got != "(11) 98765-4321" {
		t.Errorf("mobile = %q", got)
	}
	if got := UnmaskPhone("(11) 98765-4321"); got != "11987654321" {
		t.Errorf("UnmaskPhone = %q", got)
	}
}

func TestDocumentMaskRoundTrip(t *testing.T) {
	tests := []struct {
		docType entity.DocumentType
		raw     string
	}{
		{entity.DocumentCPF, "52998224725"},
		{entity.DocumentRG, "123456789"},
		{entity.DocumentPassport, "AB1234567"},
	}

	for _, tt := range tests {
		t.Run(string(tt.docType), func(t *testing.T) {
			masked := MaskDocument(tt.docType, tt.raw)
			if len(masked) > MaxMaskedLength(tt.docType) {
				t.Errorf("masked %q longer than %d", masked, MaxMaskedLength(tt.docType))
			}
			if got := UnmaskDocument(tt.docType, masked); got != tt.raw {
				t.Errorf("round trip of %q gave %q (masked %q)", tt.raw, got, masked)
			}
		})
	}
}

func TestPassportNormalization(t *testing.T) {
	if got := MaskDocument(entity.DocumentPassport, "ab-123 456 7xyz"); got != "AB1234567" {
		t.Errorf("passport = %q, want AB1234567", got)
	}
}

func TestMaxMaskedLength(t *testing.T) {
	if MaxMaskedLength(entity.DocumentCPF) != 14 || MaxMaskedLength(entity.DocumentRG) != 12 || MaxMaskedLength(entity.DocumentPassport) != 9 {
		t.Errorf("unexpected lengths: %d %d %d",
			MaxMaskedLength(entity.DocumentCPF), MaxMaskedLength(entity.DocumentRG), MaxMaskedLength(entity.DocumentPassport))
	}
}
