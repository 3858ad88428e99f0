package vm

import (
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/snow/value"
)

// Load reads, compiles and runs the script at path, returning its
// result. Unlike Require it is not idempotent: calling it twice runs the
// script twice.
func (v *VM) Load(path string) (value.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return value.Nil, err
	}
	v.tracef("load %s", path)
	return v.Eval(string(src))
}

// Require runs the script at path at most once per VM (SPEC_FULL §6): a
// second Require of the same path is a
// no-op. Paths are compared as given, without filesystem normalization.
func (v *VM) Require(path string) error {
	if v.required[path] {
		return nil
	}
	if _, err := v.Load(path); err != nil {
		return err
	}
	v.required[path] = true
	return nil
}

// Import requires every path, compiling all of them concurrently (via
// errgroup, SPEC_FULL §10) before running any, but still executing each
// path's top-level side effects sequentially and in the given order once
// compilation has finished. This keeps execution order deterministic
// while overlapping the I/O- and parse-bound work of reading and
// compiling each file.
func (v *VM) Import(paths []string) error {
	pending := make([]string, 0, len(paths))
	for _, p := range paths {
		if !v.required[p] {
			pending = append(pending, p)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	fns := make([]value.Value, len(pending))
	var g errgroup.Group
	for i, path := range pending {
		i, path := i, path
		g.Go(func() error {
			fn, err := v.compileFile(path)
			if err != nil {
				return err
			}
			fns[i] = fn
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, path := range pending {
		if _, err := v.Engine.Invoke(fns[i], value.Nil, nil); err != nil {
			return err
		}
		v.required[path] = true
	}
	return nil
}

func (v *VM) compileFile(path string) (value.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return value.Nil, err
	}
	v.tracef("import %s", path)
	return v.Compile(string(src))
}
