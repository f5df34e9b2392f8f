package share

import (
	"net/url"
	"strings"
)

// SMSLink builds an sms: URI that opens a message composer pre-filled with
// the given text. Whether the platform can follow it is a capability the
// shell supplies; the core never probes the environment.
func SMSLink(message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "sms:?&body=" + encoded
}
