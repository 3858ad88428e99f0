// Command snow runs snow scripts (spec.md §6's one-line host contract:
// construct a VM, Init it, Load the script, report the exit code).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jcorbin/snow/internal/logio"
	"github.com/jcorbin/snow/value"
	"github.com/jcorbin/snow/vm"
)

const version = "0.1.0"

// requirePaths collects repeated -r/--require flag occurrences, the way
// gothird's options.go accumulates repeatable WithInput values, just
// through flag.Value instead of a functional option.
type requirePaths []string

func (r *requirePaths) String() string { return fmt.Sprint([]string(*r)) }
func (r *requirePaths) Set(s string) error {
	*r = append(*r, s)
	return nil
}

func main() {
	var (
		debug       bool
		showVersion bool
		interactive bool
		verbose     bool
		requires    requirePaths
	)
	flag.BoolVar(&debug, "d", false, "enable debug tracing")
	flag.BoolVar(&debug, "debug", false, "enable debug tracing")
	flag.BoolVar(&showVersion, "v", false, "print version and exit")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&interactive, "i", false, "run an interactive REPL after loading the script")
	flag.BoolVar(&interactive, "interactive", false, "run an interactive REPL after loading the script")
	flag.Var(&requires, "r", "require a module path before running the script (repeatable)")
	flag.Var(&requires, "require", "require a module path before running the script (repeatable)")
	flag.BoolVar(&verbose, "verbose", false, "enable verbose tracing")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	if showVersion {
		fmt.Println("snow", version)
		return
	}

	logf := log.Leveledf("TRACE")
	if !debug && !verbose {
		logf = nil
	}

	args := flag.Args()

	opts := []vm.Option{
		vm.WithLogf(logf),
		vm.WithInput(os.Stdin),
		vm.WithOutput(os.Stdout),
	}
	for _, path := range requires {
		opts = append(opts, vm.WithRequire(path))
	}

	v := vm.New(opts...)
	if err := v.Init(); err != nil {
		log.ErrorIf(err)
		return
	}

	if len(args) > 0 {
		script := args[0]
		argv := v.NewArray()
		pushARGV(v, argv, args[1:])
		v.SetGlobal("ARGV", argv)

		if _, err := v.Load(script); err != nil {
			log.ErrorIf(err)
			return
		}
	}

	if interactive || len(args) == 0 {
		runREPL(context.Background(), v, &log)
	}
}

// pushARGV fills argv with rest, one element per remaining positional
// argument. Script text has no native string kind (spec.md §3.1's tag
// table has none); each argument is interned as a symbol instead, the
// same "process-wide interned string" role package symbol already plays
// elsewhere.
func pushARGV(v *vm.VM, argv value.Value, rest []string) {
	for _, s := range rest {
		id := v.SymbolTable().Intern(s)
		if _, err := v.CallMethod(argv, "push", value.FromSymbol(uint64(id))); err != nil {
			return
		}
	}
}
