// Package htmltext converts HTML fragments, such as Anki note fields, into
// their plain text.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Strip returns the text content of fragment: the text nodes concatenated
// in document order with entities decoded. Tags and comments are dropped
// without inserting separators, so "<div>hot</div><div>dog</div>" becomes
// "hotdog". Whitespace is kept as written. The bodies of script and style
// elements are skipped.
func Strip(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	skip := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way the text so far is all we get
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			if hidden(z) {
				skip++
			}
		case html.EndTagToken:
			if hidden(z) && skip > 0 {
				skip--
			}
		}
	}
}

// hidden reports whether the current tag holds no visible text
func hidden(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	a := atom.Lookup(name)
	return a == atom.Script || a == atom.Style
}
