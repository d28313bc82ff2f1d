package utils

import "strings"

const (
	CPFLength      = 11
	RGLength       = 9
	PassportLength = 9
)

func IsOnlyNumbers(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// OnlyDigits drops every character that is not an ASCII digit.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func IsCPFValid(cpf string) bool {
	if len(cpf) != CPFLength {
		return false
	}

	if !IsOnlyNumbers(cpf) {
		return false
	}

	// 000.000.000-00, 111.111.111-11... pass the checksum but are not real documents
	if hasAllSameDigits(cpf) {
		return false
	}
	return validateCPFDigits(cpf)
}

func hasAllSameDigits(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func validateCPFDigits(cpf string) bool {
	digit1 := calculateCPFDigit(cpf[:9], 10)
	digit2 := calculateCPFDigit(cpf[:10], 11)

	actualDigit1 := int(cpf[9] - '0')
	actualDigit2 := int(cpf[10] - '0')

	return digit1 == actualDigit1 && digit2 == actualDigit2
}

// calculateCPFDigit applies the RFB descending weights, starting at firstWeight.
func calculateCPFDigit(base string, firstWeight int) int {
	sum := 0
	for i := 0; i < len(base); i++ {
		digit := int(base[i] - '0')
		sum += digit * (firstWeight - i)
	}

	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}
