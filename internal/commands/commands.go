// Package commands runs the viewer's "cmd ..." lines typed into the prompt box.
package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

const prefix = "cmd "

// Command is a subcommand with its own flags. Run is called after the flags are parsed and
// returns a short line for the panel's message area.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() (string, error)
}

// Registry holds subcommands by name.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// NewFlagSet returns a flag set that reports errors instead of exiting or printing.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. name is the first token after "cmd" (e.g. "grid").
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() (string, error)) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run}
}

// Names returns the registered subcommands, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Parse interprets line as a prompt line. If it starts with "cmd " (case-sensitive) the rest is
// split on whitespace and returned with ok true; otherwise the line is a prompt and ok is false.
func Parse(line string) (args []string, ok bool) {
	line = strings.TrimSpace(line)
	if line == strings.TrimSpace(prefix) {
		return nil, true
	}
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	return strings.Fields(line[len(prefix):]), true
}

// Execute runs the subcommand in args[0] with args[1:] as its flags.
func (r *Registry) Execute(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing subcommand (try: cmd help)")
	}
	cmd, ok := r.cmds[args[0]]
	if !ok {
		return "", fmt.Errorf("unknown command: %s", args[0])
	}
	// Flag sets are reused, so values from the previous run are reset first.
	cmd.FlagSet.VisitAll(func(f *flag.Flag) { _ = f.Value.Set(f.DefValue) })
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return "", fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return cmd.Run()
}

// Help lists every command with its usage.
func (r *Registry) Help() string {
	var b strings.Builder
	for i, n := range r.Names() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("cmd " + n)
		if u := r.cmds[n].Usage; u != "" {
			b.WriteString(" " + u)
		}
	}
	return b.String()
}
