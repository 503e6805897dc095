package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IdentityGenerator produces the public application code for a submission made at now.
type IdentityGenerator func(now time.Time) string

var applicationCodeRe = regexp.MustCompile(`^APP[0-9]{8}[0-9A-F]{8}$`)

// GenerateApplicationCode returns "APP" + YYYYMMDD + 8 upper-case hex characters
// taken from a random UUID.
func GenerateApplicationCode(now time.Time) string {
	return "APP" + now.Format("20060102") + strings.ToUpper(uuid.NewString()[:8])
}

func IsApplicationCode(s string) bool {
	return applicationCodeRe.MatchString(s)
}
