package anki

import (
	"sort"
	"strings"

	"codeberg.org/snonux/lingoanki/internal/vocab"
)

// Token describes a template placeholder and the entry value it resolves to
type Token struct {
	Key         string
	Description string
	value       func(e vocab.WordEntry) string
}

// split holds the text around the first occurrence of the target word
type split struct {
	prefix string
	suffix string
}

// splitAt cuts s around the first occurrence of word. The word itself is
// dropped because templates re-insert it with their own emphasis markup.
// When word does not occur both halves are empty.
func splitAt(s, word string) split {
	if word == "" {
		return split{}
	}
	before, after, found := strings.Cut(s, word)
	if !found {
		return split{}
	}
	return split{prefix: before, suffix: after}
}

func translation(e vocab.WordEntry) string { return e.Translation }

var tokens = []Token{
	{Key: "{{word}}", Description: "Word spelling", value: func(e vocab.WordEntry) string { return e.Text }},
	{Key: "{{phonetic}}", Description: "Phonetic transcription (US, else UK)", value: vocab.WordEntry.Phonetic},
	{Key: "{{translation}}", Description: "Translation", value: translation},
	{Key: "{{def_cn}}", Description: "Translation (alias)", value: translation},
	{Key: "{{def_context}}", Description: "Translation (alias)", value: translation},
	{Key: "{{sentence}}", Description: "Full context sentence", value: func(e vocab.WordEntry) string { return e.ContextSentence }},
	{Key: "{{sentence-a}}", Description: "Context sentence before the word (for cloze)", value: func(e vocab.WordEntry) string { return splitAt(e.ContextSentence, e.Text).prefix }},
	{Key: "{{sentence-e}}", Description: "Context sentence after the word (for cloze)", value: func(e vocab.WordEntry) string { return splitAt(e.ContextSentence, e.Text).suffix }},
	{Key: "{{paragraph}}", Description: "Full context paragraph", value: func(e vocab.WordEntry) string { return e.ContextParagraph }},
	{Key: "{{paragraph-a}}", Description: "Paragraph before the word", value: func(e vocab.WordEntry) string { return splitAt(e.ContextParagraph, e.Text).prefix }},
	{Key: "{{paragraph-e}}", Description: "Paragraph after the word", value: func(e vocab.WordEntry) string { return splitAt(e.ContextParagraph, e.Text).suffix }},
	{Key: "{{mixed_sentence}}", Description: "Mixed-language sentence", value: func(e vocab.WordEntry) string { return e.MixedSentence }},
	{Key: "{{mixed_sentence-a}}", Description: "Mixed sentence before the word", value: func(e vocab.WordEntry) string { return splitAt(e.MixedSentence, e.Text).prefix }},
	{Key: "{{mixed_sentence-e}}", Description: "Mixed sentence after the word", value: func(e vocab.WordEntry) string { return splitAt(e.MixedSentence, e.Text).suffix }},
	{Key: "{{source_url}}", Description: "Source page URL", value: func(e vocab.WordEntry) string { return e.SourceURL }},
}

// Tokens returns the supported placeholders in help order
func Tokens() []Token {
	out := make([]Token, len(tokens))
	copy(out, tokens)
	return out
}

// byKeyLength returns the token table sorted longest key first, so that a
// token which is a prefix of another never matches inside the longer one.
func byKeyLength() []Token {
	sorted := Tokens()
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Key) > len(sorted[j].Key)
	})
	return sorted
}

// Render substitutes every recognized placeholder in template with the
// corresponding value from entry. Unknown placeholders are kept verbatim
// and missing entry fields render as empty strings. Values are inserted
// literally.
func Render(entry vocab.WordEntry, template string) string {
	if template == "" {
		return ""
	}

	ordered := byKeyLength()
	pairs := make([]string, 0, len(ordered)*2)
	for _, tok := range ordered {
		pairs = append(pairs, tok.Key, tok.value(entry))
	}

	// A single pass keeps substituted values from being scanned again.
	return strings.NewReplacer(pairs...).Replace(template)
}

// Preview renders template against the fixed preview entry
func Preview(template string) string {
	return Render(vocab.PreviewEntry(), template)
}
