package osa

import (
	"regexp"
	"strings"
)

// placeholderRE matches ${KEY} template placeholders.
var placeholderRE = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)\}`)

// Expand substitutes ${KEY} placeholders in an AppleScript template.
// Values are escaped for AppleScript string literals so substituted content
// cannot break out of a quoted string. Placeholders without a matching key
// are left intact. Single-pass: substituted values are never re-scanned.
func Expand(template string, vars map[string]string) string {
	return placeholderRE.ReplaceAllStringFunc(template, func(m string) string {
		key := m[2 : len(m)-1]
		if v, ok := vars[key]; ok {
			return EscapeString(v)
		}
		return m
	})
}

// EscapeString escapes a value for inclusion inside an AppleScript string
// literal. Backslash first, then double quote.
func EscapeString(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}
