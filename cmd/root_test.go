package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/nibzard/orgagenda/internal/agenda"
	"github.com/nibzard/orgagenda/internal/ui"
)

const workOutline = `#+TITLE: Work
* TODO Buy milk <2024-01-10 Wed>
* DONE Pay rent <2024-01-01 Mon>
* TODO Someday
`

type testApp struct {
	*app
	out  *bytes.Buffer
	errs *bytes.Buffer
	home string
}

// newTestApp returns an app over an in-memory filesystem with HOME and the
// config directory pointed at empty locations.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, name := range []string{"FILES", "RCFILE", "TODAY", "FORMAT", "AGENDA", "COLORS"} {
		t.Setenv("ORGAGENDA_"+name, "")
	}
	out, errs := &bytes.Buffer{}, &bytes.Buffer{}
	return &testApp{
		app:  newApp(out, errs, afero.NewMemMapFs()),
		out:  out,
		errs: errs,
		home: home,
	}
}

func (ta *testApp) write(t *testing.T, path, content string) {
	t.Helper()
	if err := afero.WriteFile(ta.fs, path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func (ta *testApp) run(args ...string) error {
	return ta.app.run(context.Background(), args)
}

func TestRun(t *testing.T) {
	t.Run("help flag", func(t *testing.T) {
		ta := newTestApp(t)
		if err := ta.run("-h"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(ta.out.String(), "Usage:") {
			t.Errorf("help output missing usage: %q", ta.out.String())
		}
	})

	t.Run("help command", func(t *testing.T) {
		ta := newTestApp(t)
		if err := ta.run("help"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(ta.out.String(), "config schema") {
			t.Errorf("help output missing commands: %q", ta.out.String())
		}
	})

	t.Run("version", func(t *testing.T) {
		for _, args := range [][]string{{"-version"}, {"-v"}, {"version"}} {
			ta := newTestApp(t)
			if err := ta.run(args...); err != nil {
				t.Fatalf("%v: unexpected error: %v", args, err)
			}
			if !strings.HasPrefix(ta.out.String(), "orgagenda "+Version) {
				t.Errorf("%v: got %q", args, ta.out.String())
			}
		}
	})

	t.Run("bad flag", func(t *testing.T) {
		ta := newTestApp(t)
		if err := ta.run("-bogus"); err == nil {
			t.Fatal("expected error for unknown flag")
		}
	})

	t.Run("invalid config value", func(t *testing.T) {
		ta := newTestApp(t)
		err := ta.run("-n", "0", "list", "/notes/work.org")
		if err == nil || !strings.Contains(err.Error(), "num_days") {
			t.Fatalf("expected num_days validation error, got %v", err)
		}
	})
}

func TestListCommand(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		ta := newTestApp(t)
		ta.write(t, "/notes/work.org", workOutline)

		if err := ta.run("-today", "2024-01-08", "/notes/work.org"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := ta.out.String()
		if !strings.Contains(out, "Buy milk") {
			t.Errorf("missing active task: %q", out)
		}
		if strings.Contains(out, "Pay rent") || strings.Contains(out, "Someday") {
			t.Errorf("inactive tasks listed: %q", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		ta := newTestApp(t)
		ta.write(t, "/notes/work.org", workOutline)

		if err := ta.run("-today", "2024-01-08", "-format", "json", "list", "/notes/work.org"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got struct {
			Today string   `json:"today"`
			Files []string `json:"files"`
			Tasks []struct {
				State string `json:"state"`
				Text  string `json:"text"`
				Days  int    `json:"days"`
			} `json:"tasks"`
		}
		if err := json.Unmarshal(ta.out.Bytes(), &got); err != nil {
			t.Fatalf("decode output: %v\n%s", err, ta.out.String())
		}
		if got.Today != "2024-01-08" {
			t.Errorf("today: got %q", got.Today)
		}
		if len(got.Files) != 1 || got.Files[0] != "/notes/work.org" {
			t.Errorf("files: got %v", got.Files)
		}
		if len(got.Tasks) != 1 {
			t.Fatalf("expected 1 task, got %+v", got.Tasks)
		}
		if task := got.Tasks[0]; task.State != "TODO" || task.Days != 2 || strings.TrimSpace(task.Text) != "Buy milk" {
			t.Errorf("unexpected task: %+v", task)
		}
	})

	t.Run("state filter with no match", func(t *testing.T) {
		ta := newTestApp(t)
		ta.write(t, "/notes/work.org", workOutline)

		if err := ta.run("-today", "2024-01-08", "-s", "WAIT", "/notes/work.org"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.TrimSpace(ta.out.String()) != "No tasks!" {
			t.Errorf("got %q, want No tasks!", ta.out.String())
		}
	})

	t.Run("files from flag", func(t *testing.T) {
		ta := newTestApp(t)
		ta.write(t, "/notes/work.org", workOutline)

		if err := ta.run("-today", "2024-01-08", "-f", "/notes/*.org"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(ta.out.String(), "Buy milk") {
			t.Errorf("missing active task: %q", ta.out.String())
		}
	})

	t.Run("no files", func(t *testing.T) {
		ta := newTestApp(t)
		err := ta.run("-today", "2024-01-08")
		if !errors.Is(err, agenda.ErrNoFiles) {
			t.Fatalf("expected ErrNoFiles, got %v", err)
		}
	})

	t.Run("missing outline file", func(t *testing.T) {
		ta := newTestApp(t)
		err := ta.run("-today", "2024-01-08", "/notes/missing.org")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected not-exist error, got %v", err)
		}
	})

	t.Run("explicit rc file must exist", func(t *testing.T) {
		ta := newTestApp(t)
		ta.write(t, "/notes/work.org", workOutline)
		err := ta.run("-r", "/nowhere/.vimrc", "/notes/work.org")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Fatalf("expected rc file error, got %v", err)
		}
	})
}

func TestRCFileSettings(t *testing.T) {
	ta := newTestApp(t)
	ta.write(t, filepath.Join(ta.home, ".vimrc"), `
set nocompatible
let g:org_agenda_files = ['~/org/*.org']
let g:org_todo_keywords = ['NEXT(n)', 'WAIT(w)', '|', 'DONE(d)']
`)
	ta.write(t, filepath.Join(ta.home, "org", "home.org"), `* NEXT Call the plumber <2024-01-09 Tue>
* TODO Not a keyword here <2024-01-09 Tue>
* WAIT Parcel <2024-01-12 Fri>
`)

	if err := ta.run("-today", "2024-01-08", "-format", "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := ta.out.String()
	if !strings.Contains(out, "Call the plumber") || !strings.Contains(out, "Parcel") {
		t.Errorf("rc keywords not applied: %s", out)
	}
	if strings.Contains(out, "Not a keyword here") {
		t.Errorf("TODO should not be a keyword: %s", out)
	}
}

func TestAgendaCommand(t *testing.T) {
	ta := newTestApp(t)
	ta.write(t, "/notes/work.org", workOutline)

	if err := ta.run("-today", "2024-01-08", "-n", "3", "-format", "json", "agenda", "/notes/work.org"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got struct {
		Agenda  bool `json:"agenda"`
		NumDays int  `json:"num_days"`
		Tasks   []struct {
			Days int `json:"days"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(ta.out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, ta.out.String())
	}
	if !got.Agenda || got.NumDays != 3 {
		t.Errorf("agenda header: %+v", got)
	}
	days := map[int]bool{}
	for _, task := range got.Tasks {
		days[task.Days] = true
	}
	if len(days) < 3 {
		t.Errorf("expected at least 3 distinct days, got %v", days)
	}
}

func TestFilesCommand(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		ta := newTestApp(t)
		ta.write(t, "/notes/work.org", workOutline)

		if err := ta.run("-today", "2024-01-08", "files", "/notes/work.org"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := ta.out.String()
		if !strings.Contains(out, "TITLE") || !strings.Contains(out, "/notes/work.org") {
			t.Errorf("unexpected table: %q", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		ta := newTestApp(t)
		ta.write(t, "/notes/work.org", workOutline)

		if err := ta.run("-today", "2024-01-08", "-format", "json", "files", "/notes/work.org"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got []fileSummary
		if err := json.Unmarshal(ta.out.Bytes(), &got); err != nil {
			t.Fatalf("decode output: %v\n%s", err, ta.out.String())
		}
		if len(got) != 1 || got[0].Path != "/notes/work.org" || got[0].Active != 1 {
			t.Errorf("unexpected summaries: %+v", got)
		}
	})

	t.Run("no files", func(t *testing.T) {
		ta := newTestApp(t)
		if err := ta.run("files"); !errors.Is(err, agenda.ErrNoFiles) {
			t.Fatalf("expected ErrNoFiles, got %v", err)
		}
	})
}

func TestDoctorCommand(t *testing.T) {
	t.Run("passes", func(t *testing.T) {
		ta := newTestApp(t)
		ta.write(t, "/notes/work.org", workOutline)

		if err := ta.run("-today", "2024-01-08", "doctor", "-v", "/notes/work.org"); err != nil {
			t.Fatalf("unexpected error: %v\n%s", err, ta.out.String())
		}
		out := ta.out.String()
		for _, want := range []string{"✅ /notes/work.org (1 active)", "Buy milk", "In-progress pattern: ^(?:TODO)$", "All checks passed"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("fails on unreadable file", func(t *testing.T) {
		ta := newTestApp(t)
		err := ta.run("doctor", "/notes/missing.org")
		if !errors.Is(err, errDoctorFailed) {
			t.Fatalf("expected errDoctorFailed, got %v", err)
		}
		if !strings.Contains(ta.out.String(), "❌") {
			t.Errorf("expected a failed check:\n%s", ta.out.String())
		}
	})

	t.Run("fails on bad keyword list", func(t *testing.T) {
		ta := newTestApp(t)
		ta.write(t, filepath.Join(ta.home, ".vimrc"), "let g:org_todo_keywords = ['TODO', '|', 'DONE', '|', 'X']\n")
		err := ta.run("doctor", "/notes/work.org")
		if !errors.Is(err, errDoctorFailed) {
			t.Fatalf("expected errDoctorFailed, got %v", err)
		}
		if !strings.Contains(ta.out.String(), "Setup:") {
			t.Errorf("expected setup failure:\n%s", ta.out.String())
		}
	})
}

func TestConfigCommand(t *testing.T) {
	t.Run("example", func(t *testing.T) {
		ta := newTestApp(t)
		if err := ta.run("config", "example"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(ta.out.String(), "num_days") {
			t.Errorf("unexpected example: %q", ta.out.String())
		}
	})

	t.Run("schema", func(t *testing.T) {
		ta := newTestApp(t)
		if err := ta.run("config", "schema"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !json.Valid(ta.out.Bytes()) {
			t.Errorf("schema is not valid JSON")
		}
	})

	t.Run("show", func(t *testing.T) {
		ta := newTestApp(t)
		if err := ta.run("-n", "3", "config", "show"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var numDays string
		for _, line := range strings.Split(ta.out.String(), "\n") {
			if strings.HasPrefix(line, "num_days") {
				numDays = strings.Join(strings.Fields(line), " ")
			}
		}
		if numDays != "num_days 3 flag" {
			t.Errorf("num_days line: got %q\n%s", numDays, ta.out.String())
		}
	})

	t.Run("show project file", func(t *testing.T) {
		ta := newTestApp(t)
		ta.write(t, "orgagenda.toml", "num_days = 10\n")
		if err := ta.run("config", "show"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(ta.out.String(), "project file") {
			t.Errorf("expected project file source:\n%s", ta.out.String())
		}
	})

	t.Run("usage errors", func(t *testing.T) {
		for _, args := range [][]string{{"config"}, {"config", "bogus"}, {"config", "show", "extra"}} {
			ta := newTestApp(t)
			if err := ta.run(args...); !errors.Is(err, ErrUsage) {
				t.Errorf("%v: expected ErrUsage, got %v", args, err)
			}
		}
	})
}

func TestTUICommandRequiresTerminal(t *testing.T) {
	ta := newTestApp(t)
	ta.write(t, "/notes/work.org", workOutline)
	if err := ta.run("tui", "-no-watch", "/notes/work.org"); !errors.Is(err, ui.ErrNotTTY) {
		t.Fatalf("expected ErrNotTTY, got %v", err)
	}
}
