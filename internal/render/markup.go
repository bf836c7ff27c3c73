package render

import (
	"regexp"
	"strings"
)

// markupRe matches, in order of precedence: a [[target][description]] or
// [[target]] link, *bold*, =code= and ~verbatim~ spans.
var markupRe = regexp.MustCompile(`\[\[([^\]]*)\](?:\[([^\]]*)\])?\]|\*[,\w\s-]+\*|=[._'\w]+=|~[._'\w\s]+~`)

// Inline renders org inline markup in text. Spans are drawn in their own
// style with delimiters removed; the surrounding text is drawn in base.
// With styles disabled text is returned unchanged.
func (s *Styles) Inline(text, base string) string {
	if !s.enabled {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range markupRe.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(s.Render(base, text[last:m[0]]))
		span := text[m[0]:m[1]]
		switch span[0] {
		case '[':
			label := text[m[2]:m[3]]
			if m[4] >= 0 && m[5] > m[4] {
				label = text[m[4]:m[5]]
			}
			b.WriteString(s.Render(StyleURL, label))
		case '*':
			b.WriteString(s.Render(StyleBright, strings.Trim(span, "*")))
		case '=':
			b.WriteString(s.Render(StyleCode, strings.Trim(span, "=")))
		case '~':
			b.WriteString(s.Render(StyleVerb, strings.Trim(span, "~")))
		}
		last = m[1]
	}
	b.WriteString(s.Render(base, text[last:]))
	return b.String()
}
