package notification

import "strings"

const channelPrefix = "whatsapp:"

// NormalizePhone turns a stored number into E.164-ish form. countryCode is
// given without the plus sign.
func NormalizePhone(raw, countryCode string) string {
	n := raw
	if len(n) >= len(channelPrefix) && strings.EqualFold(n[:len(channelPrefix)], channelPrefix) {
		n = n[len(channelPrefix):]
	}
	n = strings.TrimSpace(n)
	cc := strings.TrimPrefix(strings.TrimSpace(countryCode), "+")

	switch {
	case strings.HasPrefix(n, "+"):
		return n
	case strings.HasPrefix(n, "0"):
		return "+" + cc + n[1:]
	case len(n) == 10 && isDigits(n):
		return "+" + cc + n
	default:
		return "+" + n
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
