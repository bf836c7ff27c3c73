// Package outline parses org-style outline files into active tasks.
//
// A line is decomposed by a Grammar built from the configured task-state
// keywords:
//
//	** TODO Write report [1/3] <2024-01-10 Wed>   :work:urgent:
//	   DEADLINE: <2024-01-12 Fri>
//
// yields level "**", state "TODO", text "Write report", checkbox "[1/3]",
// date "<2024-01-10 Wed>", tag ":work:urgent:" and annotation "Deadline:".
// Text is kept raw: "* TODO Buy milk <2024-01-10 Wed>" yields "Buy milk "
// with the space before the date. Only uppercase second-line labels attach,
// and only DEADLINE and SCHEDULED date a heading that has no inline date.
// Lines that do not match are ignored.
//
// # Nodes
//
// A file is split into nodes at depth-1 headings; deeper headings nest under
// the nearest shallower one. Each node inherits the file-wide "#+KEY: value"
// properties and every ancestor's ":PROPERTIES:" drawer. Repeated keys
// accumulate instead of overwriting, so nested CATEGORY declarations produce
// a multi-valued Category, outermost first.
//
// # Active tasks
//
// A record is active when it carries a date and its state belongs to the
// in-progress keyword class. Its tag is its own tag followed by the tags of
// the enclosing headings, nearest first. Filters (agenda window, state, tag,
// category) are applied with AND semantics.
package outline
