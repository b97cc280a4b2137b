package vault

import (
	"github.com/lockstead/timevault"
	"github.com/lockstead/timevault/errors"
)

// Tx wraps a single vault message. There is no additional
// authentication payload, the message source is the identity.
type Tx struct {
	Msg timevault.Msg `json:"msg"`
}

var _ timevault.Tx = (*Tx)(nil)

// GetMsg returns the wrapped message.
func (tx *Tx) GetMsg() (timevault.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "transaction without message")
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(tx)
}

func (tx *Tx) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, tx)
}

// TxDecoder parses raw transaction bytes.
func TxDecoder(bz []byte) (timevault.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}
	return tx, nil
}
