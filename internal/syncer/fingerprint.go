package syncer

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
)

// Fingerprint derives the change-detection hash of one catalog record.
// The payload is "name|sprite|evo1,evo2,..." so any change to the name,
// the sprite bytes or the evolution line yields a new value. Height,
// weight and base experience ride along with those fields at the origin
// and are not hashed separately.
func Fingerprint(name, spriteBase64 string, evolutions []string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('|')
	b.WriteString(spriteBase64)
	b.WriteByte('|')
	b.WriteString(strings.Join(evolutions, ","))

	sum := sha256.Sum256([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(sum[:])
}
