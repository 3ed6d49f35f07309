// Package format renders verified answers for the delivery channels the
// assistant serves. One canonical source-attachment step feeds a small set
// of per-platform rendering strategies.
package format

import "strings"

// Platform identifies the delivery channel an answer is rendered for.
type Platform int

const (
	PlatformUniversal Platform = iota
	PlatformWeb
	PlatformSlack
	PlatformEmail
)

func (p Platform) String() string {
	switch p {
	case PlatformWeb:
		return "web"
	case PlatformSlack:
		return "slack"
	case PlatformEmail:
		return "email"
	default:
		return "universal"
	}
}

// ParsePlatform maps a wire string to a Platform. Unknown or empty values
// fall back to PlatformUniversal.
func ParsePlatform(s string) Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "web":
		return PlatformWeb
	case "slack":
		return PlatformSlack
	case "email":
		return PlatformEmail
	default:
		return PlatformUniversal
	}
}
