package app

import (
	"testing"

	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/errors"
	"github.com/lockstead/timevault/tvtest"
	"github.com/lockstead/timevault/tvtest/assert"
)

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()

	known := &tvtest.Handler{
		DeliverResult: timevault.DeliverResult{Log: "ok"},
	}
	r.Handle(&tvtest.Msg{RoutePath: "vault/deposit"}, known)

	// dispatch to the registered path
	tx := &tvtest.Tx{Msg: &tvtest.Msg{RoutePath: "vault/deposit"}}
	res, err := r.Deliver(nil, nil, tx)
	assert.Nil(t, err)
	assert.Equal(t, "ok", res.Log)
	assert.Equal(t, 1, known.DeliverCallCount())

	if _, err := r.Check(nil, nil, tx); err != nil {
		t.Fatalf("unexpected check error: %+v", err)
	}
	assert.Equal(t, 1, known.CheckCallCount())

	// an unknown path is rejected
	bad := &tvtest.Tx{Msg: &tvtest.Msg{RoutePath: "vault/unknown"}}
	_, err = r.Deliver(nil, nil, bad)
	assert.IsErr(t, errors.ErrNotFound, err)

	// a broken transaction is rejected as well
	broken := &tvtest.Tx{Err: errors.Wrap(errors.ErrInput, "no msg")}
	_, err = r.Deliver(nil, nil, broken)
	assert.IsErr(t, errors.ErrNotFound, err)
	assert.Equal(t, 1, known.DeliverCallCount())
}

func TestRouterRegistration(t *testing.T) {
	r := NewRouter()
	h := &tvtest.Handler{}

	assert.Panics(t, func() {
		r.Handle(&tvtest.Msg{RoutePath: "Bad Path!"}, h)
	})

	r.Handle(&tvtest.Msg{RoutePath: "vault/admit"}, h)
	assert.Panics(t, func() {
		r.Handle(&tvtest.Msg{RoutePath: "vault/admit"}, h)
	})
}
