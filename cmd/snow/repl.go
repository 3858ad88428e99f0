package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/jcorbin/snow/internal/logio"
	"github.com/jcorbin/snow/vm"
)

// runREPL reads one line at a time from stdin, evaluating each as a
// top-level script and printing its result, until EOF or ctx is
// cancelled (SPEC_FULL §12's -i/--interactive flag).
func runREPL(ctx context.Context, v *vm.VM, log *logio.Logger) {
	sc := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stderr, "> ")
	for sc.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := sc.Text()
		if line == "" {
			fmt.Fprint(os.Stderr, "> ")
			continue
		}

		result, err := v.Eval(line)
		if err != nil {
			log.Errorf("%v", err)
		} else {
			fmt.Fprintf(os.Stdout, "%v\n", result)
		}
		fmt.Fprint(os.Stderr, "> ")
	}
}
