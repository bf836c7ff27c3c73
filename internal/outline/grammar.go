package outline

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DatePattern matches one active or inactive date token.
const DatePattern = `[<\[]\d{4}-\d{2}-\d{2} [a-zA-Z]{3}[>\]]`

// Grammar decomposes outline text into line records. It is built once per
// keyword set and is safe for concurrent use.
type Grammar struct {
	keywords *Keywords
	re       *regexp.Regexp
	groups   map[string]int
}

// Match holds the raw fields captured for one line (or two-line block).
type Match struct {
	Level     string
	State     string
	Text      string
	Checkbox  string
	Date      string
	Tag       string
	Label     string
	LabelDate string
}

// NewGrammar builds the line pattern for a keyword set. A nil set uses the
// TODO/DONE defaults.
func NewGrammar(k *Keywords) *Grammar {
	if k == nil {
		k = DefaultKeywords()
	}
	re := regexp.MustCompile(linePattern(k))
	groups := make(map[string]int)
	for i, name := range re.SubexpNames() {
		if name != "" {
			groups[name] = i
		}
	}
	return &Grammar{keywords: k, re: re, groups: groups}
}

// Keywords returns the keyword classes the grammar was built from.
func (g *Grammar) Keywords() *Keywords {
	return g.keywords
}

func linePattern(k *Keywords) string {
	var b strings.Builder
	b.WriteString(`(?m)^`)
	b.WriteString(`(?P<level>\*{1,9}|[ \t]{1,9}-)`)
	b.WriteString(`(?P<state>[ \t](?:` + quoteAll(k.All(), "|") + `)[ \t]|)`)
	b.WriteString(`(?P<text>.*?)`)
	b.WriteString(`(?P<checkbox>[ \t]*\[\d+/\d+\][ \t]*|)`)
	b.WriteString(`(?P<date>` + DatePattern + `|)`)
	b.WriteString(`(?P<tag>[ \t]*:(?:[\w@#%]+:)+|)`)
	b.WriteString(`[ \t]*`)
	b.WriteString(`(?:\n[ \t]+(?P<label>[A-Z]+):[ \t](?P<labeldate>` + DatePattern + `)[ \t]*(?:\n|$)|\n|$)`)
	return b.String()
}

// Parse applies the grammar to text and returns every matching record in
// order. Lines that do not match are skipped.
func (g *Grammar) Parse(text string) []Match {
	all := g.re.FindAllStringSubmatch(text, -1)
	out := make([]Match, 0, len(all))
	for _, sub := range all {
		out = append(out, Match{
			Level:     g.field(sub, "level"),
			State:     strings.TrimSpace(g.field(sub, "state")),
			Text:      g.field(sub, "text"),
			Checkbox:  strings.TrimSpace(g.field(sub, "checkbox")),
			Date:      g.field(sub, "date"),
			Tag:       strings.TrimSpace(g.field(sub, "tag")),
			Label:     NormalizeLabel(g.field(sub, "label")),
			LabelDate: g.field(sub, "labeldate"),
		})
	}
	return out
}

func (g *Grammar) field(sub []string, name string) string {
	i, ok := g.groups[name]
	if !ok || i >= len(sub) {
		return ""
	}
	return sub[i]
}

// NormalizeLabel title-cases a secondary date label and appends a colon:
// "DEADLINE" and "deadline:" both become "Deadline:".
func NormalizeLabel(label string) string {
	label = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(label), ":"))
	if label == "" {
		return ""
	}
	return titleCase(label) + ":"
}

// titleCase builds a fresh caser per call; casers carry state and must not be
// shared between goroutines.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
