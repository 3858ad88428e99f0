package fiber_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jcorbin/snow/fiber"
	"github.com/jcorbin/snow/raise"
	"github.com/jcorbin/snow/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInt(t *testing.T, n int64) value.Value {
	t.Helper()
	v, ok := value.FromInt(n)
	require.True(t, ok)
	return v
}

func Test_fiberStartsNotStarted(t *testing.T) {
	s := fiber.NewScheduler()
	f := s.New(func(f *fiber.Fiber, initial value.Value) (value.Value, error) { return initial, nil })
	assert.Equal(t, fiber.NotStarted, f.Status())
}

func Test_fiberRunsToCompletionWithoutYielding(t *testing.T) {
	s := fiber.NewScheduler()
	f := s.New(func(f *fiber.Fiber, initial value.Value) (value.Value, error) {
		n, _ := initial.Int()
		return mustInt(t, n*2), nil
	})

	result, err := f.Resume(context.Background(), nil, mustInt(t, 21))
	require.NoError(t, err)
	assert.Equal(t, mustInt(t, 42), result)
	assert.Equal(t, fiber.Finished, f.Status())
}

func Test_fiberYieldThenResumeContinues(t *testing.T) {
	s := fiber.NewScheduler()
	f := s.New(func(f *fiber.Fiber, initial value.Value) (value.Value, error) {
		got := f.Yield(mustInt(t, 1))
		n, _ := got.Int()
		return mustInt(t, n+100), nil
	})

	v1, err := f.Resume(context.Background(), nil, value.Nil)
	require.NoError(t, err)
	assert.Equal(t, mustInt(t, 1), v1)
	assert.Equal(t, fiber.Suspended, f.Status())

	v2, err := f.Resume(context.Background(), nil, mustInt(t, 5))
	require.NoError(t, err)
	assert.Equal(t, mustInt(t, 105), v2)
	assert.Equal(t, fiber.Finished, f.Status())
}

func Test_fiberResumeAfterFinishedErrors(t *testing.T) {
	s := fiber.NewScheduler()
	f := s.New(func(f *fiber.Fiber, initial value.Value) (value.Value, error) { return value.Nil, nil })

	_, err := f.Resume(context.Background(), nil, value.Nil)
	require.NoError(t, err)

	_, err = f.Resume(context.Background(), nil, value.Nil)
	require.Error(t, err)
	var fin raise.FiberFinishedError
	assert.ErrorAs(t, err, &fin)
}

func Test_fiberSelfResumeErrors(t *testing.T) {
	s := fiber.NewScheduler()
	var self *fiber.Fiber
	self = s.New(func(f *fiber.Fiber, initial value.Value) (value.Value, error) {
		_, err := self.Resume(context.Background(), self, value.Nil)
		return value.Nil, err
	})

	_, err := self.Resume(context.Background(), nil, value.Nil)
	require.Error(t, err)
	var sr raise.FiberSelfResumeError
	assert.ErrorAs(t, err, &sr)
}

func Test_fiberBodyPanicRecovered(t *testing.T) {
	s := fiber.NewScheduler()
	f := s.New(func(f *fiber.Fiber, initial value.Value) (value.Value, error) {
		panic("boom")
	})

	_, err := f.Resume(context.Background(), nil, value.Nil)
	require.Error(t, err)
	assert.Equal(t, fiber.Finished, f.Status())
}

func Test_fiberBodyErrorPropagates(t *testing.T) {
	sentinel := errors.New("boom")
	s := fiber.NewScheduler()
	f := s.New(func(f *fiber.Fiber, initial value.Value) (value.Value, error) { return value.Nil, sentinel })

	_, err := f.Resume(context.Background(), nil, value.Nil)
	require.ErrorIs(t, err, sentinel)
}

func Test_schedulerSerializesTwoFibers(t *testing.T) {
	s := fiber.NewScheduler()

	var mu sync.Mutex
	var order []int

	makeBody := func(id int) fiber.Body {
		return func(f *fiber.Fiber, initial value.Value) (value.Value, error) {
			mu.Lock()
			order = append(order, id)
			mu.Unlock()
			f.Yield(value.Nil)
			mu.Lock()
			order = append(order, id)
			mu.Unlock()
			return value.Nil, nil
		}
	}

	a := s.New(makeBody(1))
	b := s.New(makeBody(2))

	_, err := a.Resume(context.Background(), nil, value.Nil)
	require.NoError(t, err)
	_, err = b.Resume(context.Background(), nil, value.Nil)
	require.NoError(t, err)
	_, err = a.Resume(context.Background(), nil, value.Nil)
	require.NoError(t, err)
	_, err = b.Resume(context.Background(), nil, value.Nil)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 1, 2}, order)
}
