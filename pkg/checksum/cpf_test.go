package checksum

import "testing"

func TestValidCPF(t *testing.T) {
	tests := []struct {
		name string
		cpf  string
		want bool
	}{
		{"valid plain", "52998224725", true},
		{"valid punctuated", "529.982.247-25", true},
		{"wrong first verifier", "52998224735", false},
		{"wrong second verifier", "52998224726", false},
		{"all identical digits", "11111111111", false},
		{"too short", "5299822472", false},
		{"too long", "529982247255", false},
		{"empty", "", false},
		{"letters only", "abcdefghijk", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidCPF(tt.cpf); got != tt.want {
				t.Errorf("ValidCPF(%q) = %v, want %v", tt.cpf, got, tt.want)
			}
		})
	}
}

func TestNormalizeCPF(t *testing.T) {
	if got := NormalizeCPF("529.982.247-25"); got != "52998224725" {
		t.Errorf("NormalizeCPF() = %q, want %q", got, "52998224725")
	}
	if got := NormalizeCPF("abc123"); got != "123" {
		t.Errorf("NormalizeCPF() = %q, want %q", got, "123")
	}
}
