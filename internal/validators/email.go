package validators

import (
	"net"
	"net/mail"
	"strings"
)

// EmailCheck decides whether an address may be used for registration.
type EmailCheck func(email string) bool

// IsEmailDomainValid accepts an address whose domain publishes MX or A/AAAA
// records.
func IsEmailDomainValid(email string) bool {
	domain, ok := emailDomain(email)
	if !ok {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}

// IsEmailWellFormed only checks the syntax; no lookups.
func IsEmailWellFormed(email string) bool {
	_, ok := emailDomain(email)
	return ok
}

func emailDomain(email string) (string, bool) {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", false
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return "", false
	}

	domain := email[at+1:]
	if !strings.Contains(domain, ".") {
		return "", false
	}
	return domain, true
}
