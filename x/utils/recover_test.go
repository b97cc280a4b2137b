package utils

import (
	"testing"

	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/errors"
	"github.com/lockstead/timevault/tvtest"
	"github.com/lockstead/timevault/tvtest/assert"
)

type panicHandler struct{}

func (panicHandler) Check(timevault.Context, timevault.KVStore, timevault.Tx) (*timevault.CheckResult, error) {
	panic("check panic")
}

func (panicHandler) Deliver(timevault.Context, timevault.KVStore, timevault.Tx) (*timevault.DeliverResult, error) {
	panic("deliver panic")
}

func TestRecovery(t *testing.T) {
	stack := tvtest.Decorate(panicHandler{}, NewRecovery())

	_, err := stack.Check(nil, nil, nil)
	assert.IsErr(t, errors.ErrPanic, err)

	_, err = stack.Deliver(nil, nil, nil)
	assert.IsErr(t, errors.ErrPanic, err)
}
