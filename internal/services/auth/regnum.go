package auth

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// RegistrationNumber builds the human-facing identifier handed out at
// registration: role prefix ("DR"/"PT"), two-digit year, two-digit month and
// a four-digit zero-padded random suffix. The random component can collide
// under load, so the number is informational only and never used as a key.
func RegistrationNumber(role string, now time.Time) string {
	prefix := "PT"
	if role == RoleDoctor {
		prefix = "DR"
	}
	return fmt.Sprintf("%s%02d%02d%04d", prefix, now.Year()%100, int(now.Month()), rand.IntN(10000))
}
