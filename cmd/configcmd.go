package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/nibzard/orgagenda/internal/config"
)

// configCommand prints an example config, the effective config or the
// config schema.
func (a *app) configCommand(cws *config.ConfigWithSources, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: config needs one of example, show, schema", ErrUsage)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: unexpected arguments: %s", ErrUsage, joinArgs(args[1:]))
	}

	switch args[0] {
	case "example":
		fmt.Fprint(a.stdout, config.ExampleConfig())
		return nil
	case "schema":
		_, err := a.stdout.Write(config.Schema())
		return err
	case "show":
		return a.showConfig(cws)
	}
	return fmt.Errorf("%w: unknown config command %q", ErrUsage, args[0])
}

func (a *app) showConfig(cws *config.ConfigWithSources) error {
	if len(cws.Config.ConfigFiles) == 0 {
		fmt.Fprintln(a.stdout, "# no config files")
	}
	for _, path := range cws.Config.ConfigFiles {
		fmt.Fprintf(a.stdout, "# %s\n", path)
	}
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	for _, key := range config.Fields() {
		source := cws.Sources[key]
		if source == "" {
			source = config.SourceDefault
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, orNone(cws.Config.Value(key)), source)
	}
	return tw.Flush()
}
