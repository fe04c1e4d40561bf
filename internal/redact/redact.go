// Package redact strips credentials and personal data from strings before
// they are logged. Store and driver errors can echo connection strings,
// bearer tokens or e-mail addresses; everything passing through Error is
// safe to put in a log line.
package redact

import "regexp"

// Placeholders written in place of matched fragments.
const (
	RedactedCredential = "[REDACTED_CREDENTIAL]"
	RedactedToken      = "[REDACTED_TOKEN]"
	RedactedEmail      = "[REDACTED_EMAIL]"
	RedactedHash       = "[REDACTED_HASH]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Rules run in order; the connection-string rule must precede the e-mail
// rule because user:pass@host looks like an address.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres(?:ql)?|mongodb(?:\+srv)?|redis)://[^@\s]+@`),
		replacement: "${1}://" + RedactedCredential + "@",
	},
	{
		pattern:     regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9_\-.~+/]+=*`),
		replacement: "Bearer " + RedactedToken,
	},
	{
		pattern:     regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: RedactedToken,
	},
	{
		pattern:     regexp.MustCompile(`\$2[abxy]?\$\d{2}\$[./A-Za-z0-9]{53}`),
		replacement: RedactedHash,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|jwt_secret)(\s*[=:]\s*)['"]?[^'"&\s]+`),
		replacement: "${1}${2}" + RedactedCredential,
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		replacement: RedactedEmail,
	},
}

// String redacts sensitive fragments from input.
func String(input string) string {
	if input == "" {
		return input
	}
	out := input
	for _, r := range rules {
		out = r.pattern.ReplaceAllString(out, r.replacement)
	}
	return out
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
