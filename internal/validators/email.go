package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid does a cheap sanity check on the domain part of an
// address: it must resolve to an MX record or at least to a host.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	mx, err := net.LookupMX(domain)
	if err == nil && len(mx) > 0 {
		return true
	}

	addrs, err := net.LookupHost(domain)
	return err == nil && len(addrs) > 0
}
