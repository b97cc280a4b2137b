package app

import (
	"testing"

	"github.com/lockstead/timevault/errors"
	"github.com/lockstead/timevault/tvtest"
	"github.com/lockstead/timevault/tvtest/assert"
)

func TestChain(t *testing.T) {
	h := &tvtest.Handler{}
	d1 := &tvtest.Decorator{}
	d2 := &tvtest.Decorator{}
	d3 := &tvtest.Decorator{}

	stack := ChainDecorators(d1, nil, d2).
		Chain(d3).
		WithHandler(h)

	_, err := stack.Check(nil, nil, nil)
	assert.Nil(t, err)
	_, err = stack.Deliver(nil, nil, nil)
	assert.Nil(t, err)

	for i, d := range []*tvtest.Decorator{d1, d2, d3} {
		if d.CallCount() != 2 {
			t.Fatalf("decorator %d called %d times", i, d.CallCount())
		}
	}
	assert.Equal(t, 2, h.CallCount())

	// a failing decorator cuts the chain short
	d2.DeliverErr = errors.Wrap(errors.ErrUnauthorized, "nope")
	_, err = stack.Deliver(nil, nil, nil)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, 3, d1.DeliverCallCount()+d1.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}
