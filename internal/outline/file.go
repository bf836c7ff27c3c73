package outline

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var filePropertyRe = regexp.MustCompile(`(?m)^#\+([A-Za-z_]+):[ \t]*(.*?)[ \t]*$`)

// File is one parsed outline file.
type File struct {
	Path       string
	Text       string
	Properties Properties
	Preamble   []string
	Nodes      []*Node
}

// Parse decomposes text into nodes and extracts each node's active tasks.
// File-wide "#+KEY: value" properties seed every node's inherited
// properties; a key repeated at file level keeps its last value.
func Parse(path, text string, g *Grammar, opts ExtractOptions) (*File, error) {
	if g == nil {
		g = NewGrammar(nil)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	f := &File{
		Path:       path,
		Text:       text,
		Properties: fileProperties(text),
	}
	f.Preamble, f.Nodes = decompose(strings.Split(text, "\n"), f.Properties)

	if opts.Source == "" {
		opts.Source = path
	}
	var err error
	f.Walk(func(n *Node) {
		if err != nil {
			return
		}
		if hm := g.Parse(n.Heading); len(hm) > 0 {
			n.Tag = hm[0].Tag
		}
		if e := n.extract(g, opts); e != nil {
			err = fmt.Errorf("%s: %w", path, e)
		}
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func fileProperties(text string) Properties {
	props := make(Properties)
	for _, m := range filePropertyRe.FindAllStringSubmatch(text, -1) {
		props.Set(m[1], m[2])
	}
	return props
}

// Walk visits every node in document order.
func (f *File) Walk(fn func(*Node)) {
	for _, n := range f.Nodes {
		n.Walk(fn)
	}
}

// Title returns the #+TITLE property, falling back to the file's base name
// without extension.
func (f *File) Title() string {
	if title := f.Properties.Get("title"); title != "" {
		return title
	}
	base := filepath.Base(f.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Active returns every node's active tasks in document order.
func (f *File) Active() []Task {
	var out []Task
	f.Walk(func(n *Node) {
		out = append(out, n.Active...)
	})
	return out
}

// NodeCount returns the number of nodes at every depth.
func (f *File) NodeCount() int {
	count := 0
	f.Walk(func(*Node) { count++ })
	return count
}
