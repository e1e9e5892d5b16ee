package syncer

import (
	"encoding/base64"
	"testing"
)

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint("pikachu", "c3ByaXRl", []string{"pichu", "pikachu", "raichu"})
	b := Fingerprint("pikachu", "c3ByaXRl", []string{"pichu", "pikachu", "raichu"})
	if a != b {
		t.Errorf("same inputs produced %q and %q", a, b)
	}
}

func TestFingerprintSensitivity(t *testing.T) {
	base := Fingerprint("pikachu", "c3ByaXRl", []string{"pichu", "pikachu", "raichu"})

	tests := []struct {
		name   string
		sprite string
		evos   []string
		rename string
	}{
		{name: "name change", rename: "raichu", sprite: "c3ByaXRl", evos: []string{"pichu", "pikachu", "raichu"}},
		{name: "sprite change", rename: "pikachu", sprite: "b3RoZXI=", evos: []string{"pichu", "pikachu", "raichu"}},
		{name: "evolution change", rename: "pikachu", sprite: "c3ByaXRl", evos: []string{"pichu", "pikachu"}},
		{name: "evolution order", rename: "pikachu", sprite: "c3ByaXRl", evos: []string{"raichu", "pikachu", "pichu"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fingerprint(tt.rename, tt.sprite, tt.evos); got == base {
				t.Error("fingerprint did not move")
			}
		})
	}
}

func TestFingerprintIsBase64SHA256(t *testing.T) {
	got := Fingerprint("bulbasaur", "", nil)
	raw, err := base64.StdEncoding.DecodeString(got)
	if err != nil {
		t.Fatalf("not valid base64: %v", err)
	}
	if len(raw) != 32 {
		t.Errorf("decoded length = %d, want 32", len(raw))
	}
}

func TestFingerprintEmptyEvolutions(t *testing.T) {
	if Fingerprint("ditto", "x", nil) != Fingerprint("ditto", "x", []string{}) {
		t.Error("nil and empty evolution lists must hash identically")
	}
}
