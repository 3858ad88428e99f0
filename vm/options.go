package vm

import (
	"bytes"
	"io"
	"io/ioutil"

	"github.com/jcorbin/snow/internal/flushio"
)

// Option configures a VM at construction time (spec.md §6, SPEC_FULL §9),
// following the same flattening functional-options shape the teacher's
// VMOption/options/noption trio uses.
type Option interface{ apply(v *VM) }

var defaultOptions = Options(
	WithInput(bytes.NewReader(nil)),
	WithOutput(ioutil.Discard),
)

// Options flattens a list of Options into one, matching teacher's
// VMOptions(...) — nil and no-op entries drop out, nested option lists
// are spliced in place.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil, noption:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, opt)
		}
	}
	switch len(res) {
	case 0:
		return noption{}
	case 1:
		return res[0]
	default:
		return res
	}
}

type noption struct{}

func (noption) apply(*VM) {}

type options []Option

func (opts options) apply(v *VM) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(v)
		}
	}
}

type inputOption struct{ io.Reader }
type outputOption struct{ io.Writer }
type memLimitOption uint
type logfOption func(mess string, args ...interface{})
type fiberStackOption int
type requireOption string

// WithInput sets the VM's script/stdin source.
func WithInput(r io.Reader) Option { return inputOption{r} }

// WithOutput sets the VM's stdout sink.
func WithOutput(w io.Writer) Option { return outputOption{w} }

// WithMemLimit records a symbol table / heap size budget (spec.md §5); 0
// means unbounded. The VM stores the value; no allocation path checks it.
func WithMemLimit(limit uint) Option { return memLimitOption(limit) }

// WithLogf installs the VM's execution tracer sink (SPEC_FULL §9), mirrored
// on gothird's own WithLogf.
func WithLogf(logf func(mess string, args ...interface{})) Option { return logfOption(logf) }

// WithFiberStackSize records a hint of the expected nesting depth of fiber
// resumes; a zero value leaves the default. The VM stores the hint; nothing
// reads it.
func WithFiberStackSize(n int) Option { return fiberStackOption(n) }

// WithRequire registers a module path to be required at Init time (backs
// the CLI's repeatable -r/--require flag, SPEC_FULL §12). Repeatable.
func WithRequire(path string) Option { return requireOption(path) }

func (o inputOption) apply(v *VM) { v.in = o.Reader }

func (o outputOption) apply(v *VM) {
	if v.out != nil {
		v.out.Flush()
	}
	v.out = flushio.NewWriteFlusher(o.Writer)
}

func (o memLimitOption) apply(v *VM) { v.memLimit = uint(o) }

func (o logfOption) apply(v *VM) { v.logf = o }

func (o fiberStackOption) apply(v *VM) { v.fiberStackSize = int(o) }

func (o requireOption) apply(v *VM) { v.requires = append(v.requires, string(o)) }
