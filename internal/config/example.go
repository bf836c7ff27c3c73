package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# orgagenda configuration file
# Values can be overridden by ORGAGENDA_* environment variables or CLI flags.

# Outline files or glob patterns. When empty, g:org_agenda_files from the
# rc file is used.
# files = ["~/org/*.org", "~/notes/inbox.org"]

# Vim config holding g:org_agenda_files and g:org_todo_keywords
rcfile = "~/.vimrc"

# Colorize output
colors = false

# Show the agenda view instead of the plain list
agenda = false

# Days in the agenda window
num_days = 7

# Regex filters (case-insensitive)
# states = "todo|wait"
# tags = "work"
# categories = "home"

# Override today (YYYY-MM-DD)
# today = "2024-01-08"

# Files parsed in parallel (0 = one goroutine per file)
workers = 4

# Output format: text or json
format = "text"

# Logging: debug, info, warn, error; format text, json or logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false

# Task keywords. Overrides g:org_todo_keywords when set.
# [keywords]
# in_progress = ["TODO", "DOING", "WAIT"]
# completed = ["DONE", "CANCELLED"]
`
}
