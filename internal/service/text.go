package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// plainText strips all markup from user-supplied text. Entities are decoded and the
// result sanitized again until stable, so encoded markup cannot survive as a tag.
func plainText(s string) string {
	for i := 0; i < 3; i++ {
		out := html.UnescapeString(textPolicy.Sanitize(s))
		if out == s {
			break
		}
		s = out
	}
	return strings.TrimSpace(s)
}
