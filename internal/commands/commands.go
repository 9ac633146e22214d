package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
)

// ErrUsage is returned when no subcommand is given or the name is unknown.
var ErrUsage = errors.New("usage")

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state.
type Command struct {
	Name    string
	Summary string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. name is the first command-line argument (e.g. "view").
// fs is that command's FlagSet; run is called after fs.Parse(args[1:]) succeeds.
func (r *Registry) Register(name, summary string, fs *flag.FlagSet, run func() error) {
	r.cmds[name] = &Command{Name: name, Summary: summary, FlagSet: fs, Run: run}
}

// Names returns the registered command names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Usage writes one line per command.
func (r *Registry) Usage(w io.Writer, program string) {
	fmt.Fprintf(w, "usage: %s <command> [flags]\n\ncommands:\n", program)
	for _, n := range r.Names() {
		fmt.Fprintf(w, "  %-10s %s\n", n, r.cmds[n].Summary)
	}
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error wrapping ErrUsage for a missing or unknown command, the parse error, or the
// error from Run.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand: %w", ErrUsage)
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command %s: %w", name, ErrUsage)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run()
}
