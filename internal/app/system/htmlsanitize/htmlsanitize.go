// Package htmlsanitize strips dangerous markup from user-supplied text.
//
// Session descriptions are free text entered by users and rendered by
// several clients; they pass through here on every write.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy allows basic formatting (bold, italics, links with safe schemes)
// and removes scripts, event handlers, and javascript: URLs.
var policy = bluemonday.UGCPolicy()

// Sanitize returns s with unsafe HTML removed. Plain text passes through
// unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
