package outline

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/nibzard/orgagenda/internal/orgdate"
)

var (
	headingRe      = regexp.MustCompile(`^(\*+)[ \t]`)
	drawerEntryRe  = regexp.MustCompile(`^[ \t]*:([^:\s]+):[ \t]*(.*?)[ \t]*$`)
	drawerStartTag = ":PROPERTIES:"
	drawerEndTag   = ":END:"
)

// Properties maps lowercased property names to every value declared for
// them, outermost scope first.
type Properties map[string][]string

// Clone returns an independent copy.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Add appends a value for key. Existing values are kept, so a key declared
// by several nested scopes accumulates in declaration order.
func (p Properties) Add(key, value string) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}
	p[key] = append(p[key], strings.TrimSpace(value))
}

// Set replaces every value for key.
func (p Properties) Set(key, value string) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}
	p[key] = []string{strings.TrimSpace(value)}
}

// Get returns the innermost value for key.
func (p Properties) Get(key string) string {
	v := p[strings.ToLower(key)]
	if len(v) == 0 {
		return ""
	}
	return v[len(v)-1]
}

// Values returns all values for key, outermost first.
func (p Properties) Values(key string) []string {
	return append([]string(nil), p[strings.ToLower(key)]...)
}

// Node is one heading and its body. Text holds the node's own segment: the
// heading line plus body lines up to its first child heading.
type Node struct {
	Depth      int
	Heading    string
	Text       string
	Tag        string
	Properties Properties
	Records    []Match
	Active     []Task
	Children   []*Node

	parent *Node
}

// Parent returns the enclosing node, or nil for a top-level node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Walk visits n and its descendants in document order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Category returns the categories in scope for the node, title-casing
// values written entirely in lowercase.
func (n *Node) Category() Category {
	values := n.Properties.Values("category")
	if len(values) == 0 {
		return nil
	}
	out := make(Category, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if isLower(v) {
			v = titleCase(v)
		}
		out = append(out, v)
	}
	return out
}

// inheritedTags returns the heading tags of n and its ancestors, nearest
// first.
func (n *Node) inheritedTags() []string {
	var tags []string
	for cur := n; cur != nil; cur = cur.parent {
		if cur.Tag != "" {
			tags = append(tags, cur.Tag)
		}
	}
	return tags
}

// ExtractOptions controls how active tasks are selected from nodes.
type ExtractOptions struct {
	Today   time.Time
	Filters []Filter
	Source  string
}

// extract parses the node's own segment and fills Records and Active.
func (n *Node) extract(g *Grammar, opts ExtractOptions) error {
	n.Records = g.Parse(n.Text)
	category := n.Category()
	ancestors := n.inheritedTags()

	var active []Task
	for _, m := range n.Records {
		t := taskFromMatch(m)
		if t.Date == "" || g.keywords.Classify(t.State) != ClassInProgress {
			continue
		}

		t.Tag = JoinTags(append([]string{t.Tag}, ancestors...)...)
		if category != nil {
			t.Category = append(Category(nil), category...)
		}
		t.Source = opts.Source

		days, err := orgdate.DaysUntil(t.Date, opts.Today)
		if err != nil {
			return err
		}
		t.Days = days
		active = append(active, t)
	}
	n.Active = ApplyFilters(active, opts.Filters)
	return nil
}

// JoinTags merges colon-delimited tag strings in order, dropping repeats:
// JoinTags(":a:b:", ":b:c:") is ":a:b:c:".
func JoinTags(tags ...string) string {
	var segs []string
	seen := make(map[string]bool)
	for _, tag := range tags {
		for _, seg := range strings.Split(strings.TrimSpace(tag), ":") {
			if seg == "" || seen[seg] {
				continue
			}
			seen[seg] = true
			segs = append(segs, seg)
		}
	}
	if len(segs) == 0 {
		return ""
	}
	return ":" + strings.Join(segs, ":") + ":"
}

// headingDepth returns the star count of a heading line, or 0.
func headingDepth(line string) int {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	return len(m[1])
}

// decompose splits lines into top-level nodes at depth-1 headings. Lines
// before the first depth-1 heading are returned as the preamble. Deeper
// headings nest under the nearest shallower heading.
func decompose(lines []string, inherited Properties) (preamble []string, roots []*Node) {
	start := len(lines)
	for i, line := range lines {
		if headingDepth(line) == 1 {
			start = i
			break
		}
	}
	preamble = lines[:start]

	type builder struct {
		node  *Node
		lines []string
	}
	var open []*builder
	var all []*builder

	for _, line := range lines[start:] {
		depth := headingDepth(line)
		if depth == 0 {
			cur := open[len(open)-1]
			cur.lines = append(cur.lines, line)
			continue
		}
		for len(open) > 0 && open[len(open)-1].node.Depth >= depth {
			open = open[:len(open)-1]
		}
		b := &builder{node: &Node{Depth: depth, Heading: line}, lines: []string{line}}
		if len(open) == 0 {
			roots = append(roots, b.node)
		} else {
			parent := open[len(open)-1].node
			b.node.parent = parent
			parent.Children = append(parent.Children, b.node)
		}
		open = append(open, b)
		all = append(all, b)
	}

	for _, b := range all {
		b.node.Text = strings.Join(b.lines, "\n")
		props := inherited
		if b.node.parent != nil {
			props = b.node.parent.Properties
		}
		b.node.Properties = props.Clone()
		for _, kv := range drawerEntries(b.lines) {
			b.node.Properties.Add(kv[0], kv[1])
		}
	}
	return preamble, roots
}

// drawerEntries returns the key/value pairs of the first property drawer.
func drawerEntries(lines []string) [][2]string {
	begin := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == drawerStartTag {
			begin = i
			break
		}
	}
	if begin < 0 {
		return nil
	}
	var out [][2]string
	for _, line := range lines[begin+1:] {
		if strings.TrimSpace(line) == drawerEndTag {
			return out
		}
		if m := drawerEntryRe.FindStringSubmatch(line); m != nil {
			out = append(out, [2]string{m[1], m[2]})
		}
	}
	// Unterminated drawer.
	return nil
}

func isLower(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
