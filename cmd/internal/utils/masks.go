package utils

import (
	"strings"
	"trackpass/cmd/internal/domain/entity"
	"unicode"
)

// Placeholder '0' consumes one digit; any other rune is a literal.
const (
	MaskCPF        = "000.000.000-00"
	MaskRG         = "00.000.000-0"
	MaskPhone      = "(00) 0000-0000"
	MaskMobile     = "(00) 00000-0000"
	maskMobileSize = 11
)

// ApplyMask writes the digits of raw into pattern. Literals are only emitted
// while there are digits left to place, so partial input masks progressively
// ("1234" -> "123.4" for CPF). Extra digits are dropped.
func ApplyMask(pattern, raw string) string {
	digits := OnlyDigits(raw)
	if digits == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(pattern))
	next := 0
	for i := 0; i < len(pattern) && next < len(digits); i++ {
		if pattern[i] == '0' {
			b.WriteByte(digits[next])
			next++
			continue
		}
		b.WriteByte(pattern[i])
	}
	return b.String()
}

func MaskDocument(docType entity.DocumentType, raw string) string {
	switch docType {
	case entity.DocumentCPF:
		return ApplyMask(MaskCPF, raw)
	case entity.DocumentRG:
		return ApplyMask(MaskRG, raw)
	case entity.DocumentPassport:
		return normalizePassport(raw)
	default:
		return strings.TrimSpace(raw)
	}
}

// UnmaskDocument returns the value that is sent over the wire.
// Passports keep their letters; the numeric documents keep only digits.
func UnmaskDocument(docType entity.DocumentType, masked string) string {
	if docType == entity.DocumentPassport {
		return normalizePassport(masked)
	}
	return OnlyDigits(masked)
}

func MaskPhoneNumber(raw string) string {
	digits := OnlyDigits(raw)
	if len(digits) >= maskMobileSize {
		return ApplyMask(MaskMobile, digits)
	}
	return ApplyMask(MaskPhone, digits)
}

func UnmaskPhone(masked string) string {
	return OnlyDigits(masked)
}

// MaxMaskedLength is the longest string MaskDocument can produce for docType.
func MaxMaskedLength(docType entity.DocumentType) int {
	switch docType {
	case entity.DocumentCPF:
		return len(MaskCPF)
	case entity.DocumentRG:
		return len(MaskRG)
	case entity.DocumentPassport:
		return PassportLength
	default:
		return 0
	}
}

func normalizePassport(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if b.Len() == PassportLength {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsDigit(r) || unicode.IsLetter(r)) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
