package outline

import (
	"fmt"
	"regexp"
	"strings"
)

// Default keyword classes used when no editor configuration declares any.
var (
	DefaultInProgress = []string{"TODO"}
	DefaultCompleted  = []string{"DONE"}
)

// Class identifies which keyword class a state belongs to.
type Class int

const (
	ClassNone Class = iota
	ClassInProgress
	ClassCompleted
)

func (c Class) String() string {
	switch c {
	case ClassInProgress:
		return "in_progress"
	case ClassCompleted:
		return "completed"
	default:
		return "none"
	}
}

// KeywordError reports an unusable keyword list.
type KeywordError struct {
	Keyword string
	Reason  string
}

func (e *KeywordError) Error() string {
	if e.Keyword == "" {
		return "keywords: " + e.Reason
	}
	return fmt.Sprintf("keyword %q: %s", e.Keyword, e.Reason)
}

// Keywords holds the two disjoint task-state classes.
type Keywords struct {
	InProgress []string
	Completed  []string

	inProgress *regexp.Regexp
	completed  *regexp.Regexp
}

// DefaultKeywords returns the TODO/DONE fallback classes.
func DefaultKeywords() *Keywords {
	k, _ := NewKeywords(DefaultInProgress, DefaultCompleted)
	return k
}

// NewKeywords validates the keyword classes and compiles their matchers.
// Keywords must be non-empty, free of whitespace, and unique across both
// classes. Surrounding whitespace is trimmed.
func NewKeywords(inProgress, completed []string) (*Keywords, error) {
	k := &Keywords{
		InProgress: trimAll(inProgress),
		Completed:  trimAll(completed),
	}
	if len(k.InProgress) == 0 {
		return nil, &KeywordError{Reason: "in-progress class is empty"}
	}

	seen := make(map[string]bool)
	for _, kw := range k.All() {
		if kw == "" {
			return nil, &KeywordError{Reason: "empty keyword"}
		}
		if strings.ContainsAny(kw, " \t\r\n") {
			return nil, &KeywordError{Keyword: kw, Reason: "contains whitespace"}
		}
		if seen[kw] {
			return nil, &KeywordError{Keyword: kw, Reason: "declared more than once"}
		}
		seen[kw] = true
	}

	k.inProgress = classMatcher(k.InProgress)
	k.completed = classMatcher(k.Completed)
	return k, nil
}

// All returns every keyword, in-progress class first, in declaration order.
func (k *Keywords) All() []string {
	out := make([]string, 0, len(k.InProgress)+len(k.Completed))
	out = append(out, k.InProgress...)
	return append(out, k.Completed...)
}

// Classify returns the class of a state keyword.
func (k *Keywords) Classify(state string) Class {
	state = strings.TrimSpace(state)
	switch {
	case state == "":
		return ClassNone
	case k.inProgress != nil && k.inProgress.MatchString(state):
		return ClassInProgress
	case k.completed != nil && k.completed.MatchString(state):
		return ClassCompleted
	}
	return ClassNone
}

// InProgressPattern returns the whole-token matcher for the in-progress class.
func (k *Keywords) InProgressPattern() string {
	if k.inProgress == nil {
		return ""
	}
	return k.inProgress.String()
}

// CompletedPattern returns the whole-token matcher for the completed class.
func (k *Keywords) CompletedPattern() string {
	if k.completed == nil {
		return ""
	}
	return k.completed.String()
}

func classMatcher(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	return regexp.MustCompile(`^(?:` + quoteAll(words, "|") + `)$`)
}

func quoteAll(words []string, sep string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, sep)
}

func trimAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, strings.TrimSpace(w))
	}
	return out
}
