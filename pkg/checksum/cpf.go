// Package checksum validates checksummed natural keys. The only format the
// service uses today is the Brazilian CPF, an 11-digit identifier whose last
// two digits verify the preceding nine.
package checksum

import "strings"

// cpfLength is the number of digits in a normalized CPF.
const cpfLength = 11

var (
	cpfWeightsFirst  = [9]int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	cpfWeightsSecond = [10]int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
)

// NormalizeCPF strips every non-digit character.
func NormalizeCPF(cpf string) string {
	var b strings.Builder
	b.Grow(cpfLength)
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidCPF reports whether cpf is a well-formed CPF: 11 digits, not all
// identical, with both verification digits matching their checksums.
// Punctuation (dots, dashes) is tolerated.
func ValidCPF(cpf string) bool {
	digits := NormalizeCPF(cpf)
	if len(digits) != cpfLength {
		return false
	}

	// All-identical sequences (e.g. "11111111111") pass the checksum but
	// are not issued.
	if strings.Count(digits, digits[:1]) == cpfLength {
		return false
	}

	first := cpfVerifier(digits[:9], cpfWeightsFirst[:])
	second := cpfVerifier(digits[:10], cpfWeightsSecond[:])

	return int(digits[9]-'0') == first && int(digits[10]-'0') == second
}

// cpfVerifier computes one verification digit from the weighted digit sum.
func cpfVerifier(digits string, weights []int) int {
	sum := 0
	for i := 0; i < len(digits); i++ {
		sum += int(digits[i]-'0') * weights[i]
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}
