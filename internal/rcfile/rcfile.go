// Package rcfile reads org settings from a vim configuration file.
//
// Two variables are recognised:
//
//	let g:org_agenda_files = ['~/org/work.org', '~/org/home.org']
//	let g:org_todo_keywords =
//	    \ ['TODO(t)', 'DOING(s)', 'WAIT(w)', '|', 'DONE(d)', 'CANCELED(c)']
//
// Keyword shortcut suffixes such as "(t)" are dropped. Keywords before the
// "|" separator are in progress, the rest are completed.
package rcfile

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/nibzard/orgagenda/internal/utils"
)

const (
	agendaFilesVar  = "org_agenda_files"
	todoKeywordsVar = "org_todo_keywords"
)

var (
	shortcutRe = regexp.MustCompile(`\([^()]*\)$`)
	quotedRe   = regexp.MustCompile(`'((?:[^']|'')*)'|"((?:[^"\\]|\\.)*)"`)
)

// ParseError reports a malformed setting in the rc file.
type ParseError struct {
	Path    string
	Setting string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: g:%s: %s", e.Path, e.Setting, e.Reason)
}

// Settings holds the org values found in an rc file.
type Settings struct {
	Path string

	// Files lists agenda files with "~" and environment variables expanded.
	// Glob patterns are kept as written.
	Files []string

	InProgress []string
	Completed  []string

	// HasKeywords is false when the file declares no keyword list and the
	// TODO/DONE defaults were used.
	HasKeywords bool
}

// Load reads path from fsys and parses it. A missing file is reported with
// an error satisfying errors.Is(err, fs.ErrNotExist).
func Load(fsys afero.Fs, path string) (*Settings, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	path = utils.ExpandPath(path)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("rc file %s: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("read rc file %s: %w", path, err)
	}
	return Parse(path, string(data))
}

// Parse extracts the org settings from rc file contents.
func Parse(path, data string) (*Settings, error) {
	data = stripComments(data)
	s := &Settings{
		Path:       path,
		InProgress: []string{"TODO"},
		Completed:  []string{"DONE"},
	}

	if list, ok, err := listLiteral(data, agendaFilesVar); err != nil {
		return nil, &ParseError{Path: path, Setting: agendaFilesVar, Reason: err.Error()}
	} else if ok {
		for _, item := range quotedItems(list) {
			if item = strings.TrimSpace(item); item != "" {
				s.Files = append(s.Files, utils.ExpandPath(item))
			}
		}
	}

	list, ok, err := listLiteral(data, todoKeywordsVar)
	if err != nil {
		return nil, &ParseError{Path: path, Setting: todoKeywordsVar, Reason: err.Error()}
	}
	if !ok {
		return s, nil
	}
	inProgress, completed, err := splitKeywords(quotedItems(firstSequence(list)))
	if err != nil {
		return nil, &ParseError{Path: path, Setting: todoKeywordsVar, Reason: err.Error()}
	}
	s.InProgress, s.Completed = inProgress, completed
	s.HasKeywords = true
	return s, nil
}

// splitKeywords divides a keyword sequence at "|". Without a separator the
// last keyword is the only completed one.
func splitKeywords(items []string) (inProgress, completed []string, err error) {
	sep := -1
	var words []string
	for _, item := range items {
		item = strings.TrimSpace(shortcutRe.ReplaceAllString(strings.TrimSpace(item), ""))
		if item == "|" {
			if sep >= 0 {
				return nil, nil, errors.New("more than one \"|\" separator")
			}
			sep = len(words)
			continue
		}
		if item == "" {
			continue
		}
		words = append(words, item)
	}
	switch {
	case len(words) == 0:
		return nil, nil, errors.New("empty keyword list")
	case sep < 0 && len(words) < 2:
		return nil, nil, errors.New("need at least one in-progress and one completed keyword")
	case sep < 0:
		sep = len(words) - 1
	case sep == 0:
		return nil, nil, errors.New("no in-progress keywords before \"|\"")
	}
	return words[:sep], words[sep:], nil
}

// stripComments drops full-line vim comments.
func stripComments(data string) string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	lines := strings.Split(data, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), `"`) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// listLiteral returns the bracketed list assigned to name, or ok=false when
// the variable is not assigned.
func listLiteral(data, name string) (list string, ok bool, err error) {
	re := regexp.MustCompile(`(?:g:)?` + regexp.QuoteMeta(name) + `\s*=\s*(?:\\\s*)*`)
	loc := re.FindStringIndex(data)
	if loc == nil {
		return "", false, nil
	}
	rest := data[loc[1]:]
	if !strings.HasPrefix(rest, "[") {
		return "", false, errors.New("value is not a list")
	}

	depth := 0
	var quote byte
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch {
		case quote != 0:
			if c == '\\' && quote == '"' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth == 0 {
				return rest[:i+1], true, nil
			}
		}
	}
	return "", false, errors.New("unterminated list")
}

// firstSequence returns the first inner list of a nested list literal, or
// the list itself.
func firstSequence(list string) string {
	inner := strings.TrimSpace(strings.TrimPrefix(list, "["))
	inner = strings.TrimLeft(inner, " \t\n\\")
	if !strings.HasPrefix(inner, "[") {
		return list
	}
	if end := strings.Index(inner, "]"); end >= 0 {
		return inner[:end+1]
	}
	return list
}

func quotedItems(list string) []string {
	var items []string
	for _, m := range quotedRe.FindAllStringSubmatch(list, -1) {
		if strings.HasPrefix(m[0], "'") {
			items = append(items, strings.ReplaceAll(m[1], "''", "'"))
		} else {
			items = append(items, strings.ReplaceAll(m[2], `\"`, `"`))
		}
	}
	return items
}
