package mem_test

import (
	"testing"

	"github.com/jcorbin/snow/internal/mem"
	"github.com/jcorbin/snow/internal/panicerr"
	"github.com/stretchr/testify/require"
)

func Test_Cells(t *testing.T) {
	for _, tc := range []cellsTestCase{
		cellsTest("basic",
			"init", func(t *testing.T, m *mem.Cells[int]) {
				m.PageSize = 4
				val, err := m.Load(0)
				require.NoError(t, err, "unexpected load error")
				require.Equal(t, 0, val, "expected 0 @0")
				require.Equal(t, uint(0), m.Size(), "expected 0 initial size")
			},

			"9 -> 0", func(t *testing.T, m *mem.Cells[int]) {
				require.NoError(t, m.Stor(0, 9), "must stor @0")
				val, err := m.Load(0)
				require.NoError(t, err, "unexpected load error")
				require.Equal(t, 9, val, "expected 9 @0")
				expectValuesAt(t, m, 0, 9, 0, 0, 0)
			},

			"{1,2,3,4,5,6} -> 0x9", func(t *testing.T, m *mem.Cells[int]) {
				require.NoError(t, m.Stor(0x9, 1, 2, 3, 4, 5, 6), "must stor @0x9")
				expectValuesAt(t, m, 6,
					0, 0,
					0, 1, 2, 3,
					4, 5, 6, 0,
					0, 0)
			},
		),

		cellsTest("missing lower section",
			"initial value in 2nd page", func(t *testing.T, m *mem.Cells[int]) {
				m.PageSize = 0x10
				expectValueAt(t, m, 0x18, 0)
				require.NoError(t, m.Stor(0x18, 42), "unexpected stor error")
				expectValueAt(t, m, 0x18, 42)
			},
			"load low", func(t *testing.T, m *mem.Cells[int]) { expectValueAt(t, m, 0x8, 0) },
			"create 3rd page", func(t *testing.T, m *mem.Cells[int]) {
				require.NoError(t, m.Stor(0x28, 99), "unexpected stor error")
				expectValueAt(t, m, 0x28, 99)
			},
			"load low again", func(t *testing.T, m *mem.Cells[int]) { expectValueAt(t, m, 0x8, 0) },
		),

		cellsTest("limit enforced",
			"stor past limit fails", func(t *testing.T, m *mem.Cells[int]) {
				m.Limit = 4
				err := m.Stor(10, 1)
				require.Error(t, err)
				var lim mem.LimitError
				require.ErrorAs(t, err, &lim)
			},
		),
	} {
		t.Run(tc.name, func(t *testing.T) {
			var m mem.Cells[int]
			for _, step := range tc.steps {
				if !t.Run(step.name, isolateTest(t, step.bind(&m))) {
					break
				}
			}
		})
	}
}

func isolateTest(t *testing.T, f func(t *testing.T)) func(t *testing.T) {
	return func(t *testing.T) {
		if err := panicerr.Recover(t.Name(), func() error {
			f(t)
			return nil
		}); err != nil {
			t.Logf("%+v", err)
			t.Fail()
		}
	}
}

func expectValueAt(t *testing.T, m *mem.Cells[int], addr uint, value int) {
	t.Helper()
	val, err := m.Load(addr)
	require.NoError(t, err, "unexpected load @0x%x error", addr)
	require.Equal(t, value, val, "expected value @0x%x", addr)
}

func expectValuesAt(t *testing.T, m *mem.Cells[int], addr uint, values ...int) {
	t.Helper()
	buf := make([]int, len(values))
	require.NoError(t, m.LoadInto(addr, buf), "must load %v values from @0x%x", len(values), addr)
	require.Equal(t, values, buf, "expected values @0x%x", addr)
}

func cellsTest(name string, args ...interface{}) (tc cellsTestCase) {
	tc.name = name
	for i := 0; i < len(args); i++ {
		var step cellsTestStep
		step.name = args[i].(string)
		i++
		step.f = args[i].(func(t *testing.T, m *mem.Cells[int]))
		tc.steps = append(tc.steps, step)
	}
	return tc
}

type cellsTestCase struct {
	name  string
	steps []cellsTestStep
}

type cellsTestStep struct {
	name string
	f    func(t *testing.T, m *mem.Cells[int])
}

func (step cellsTestStep) bind(m *mem.Cells[int]) func(t *testing.T) {
	return func(t *testing.T) { step.f(t, m) }
}
