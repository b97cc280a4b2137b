package utils

import (
	"testing"

	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/errors"
	"github.com/lockstead/timevault/store"
	"github.com/lockstead/timevault/tvtest"
	"github.com/lockstead/timevault/tvtest/assert"
)

// writeHandler writes the given key/value pair to the KVStore
// and returns the configured error.
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ timevault.Handler = writeHandler{}

func (h writeHandler) Check(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.CheckResult, error) {
	db.Set(h.key, h.value)
	return &timevault.CheckResult{}, h.err
}

func (h writeHandler) Deliver(ctx timevault.Context, db timevault.KVStore, tx timevault.Tx) (*timevault.DeliverResult, error) {
	db.Set(h.key, h.value)
	return &timevault.DeliverResult{}, h.err
}

func TestSavepoint(t *testing.T) {
	fail := errors.Wrap(errors.ErrState, "handler failed")

	cases := map[string]struct {
		save     Savepoint
		handler  timevault.Handler
		deliver  bool
		written  bool
		expected error
	}{
		"commit on success": {
			save:    NewSavepoint().OnDeliver(),
			handler: writeHandler{key: []byte("k"), value: []byte("v")},
			deliver: true,
			written: true,
		},
		"rollback on error": {
			save:     NewSavepoint().OnDeliver(),
			handler:  writeHandler{key: []byte("k"), value: []byte("v"), err: fail},
			deliver:  true,
			written:  false,
			expected: fail,
		},
		"check is isolated as well": {
			save:     NewSavepoint().OnCheck(),
			handler:  writeHandler{key: []byte("k"), value: []byte("v"), err: fail},
			written:  false,
			expected: fail,
		},
		"inactive savepoint passes writes through": {
			save:     NewSavepoint().OnCheck(),
			handler:  writeHandler{key: []byte("k"), value: []byte("v"), err: fail},
			deliver:  true,
			written:  true,
			expected: fail,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			stack := tvtest.Decorate(tc.handler, tc.save)

			var err error
			if tc.deliver {
				_, err = stack.Deliver(nil, db, nil)
			} else {
				_, err = stack.Check(nil, db, nil)
			}
			if tc.expected == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.expected, err)
			}
			assert.Equal(t, tc.written, db.Has([]byte("k")))
		})
	}
}
