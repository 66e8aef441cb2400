package ingest

import (
	"strings"

	"golang.org/x/net/html"
)

// StripMarkup removes HTML tags from review text, replacing each tag with a
// space so that "great<br /><br />film" yields two words. Entities are decoded.
func StripMarkup(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	z := html.NewTokenizer(strings.NewReader(text))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		default:
			b.WriteByte(' ')
		}
	}
}
