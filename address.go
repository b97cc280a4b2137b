package timevault

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcutil/bech32"

	"github.com/lockstead/timevault/errors"
)

// AddressLength is the length of all addresses. You can modify it in
// init() before any addresses are calculated, but it must not change
// during the lifetime of the kvstore.
var AddressLength = 20

// Bech32Prefix is the human readable part used when rendering an
// address in its bech32 text form.
const Bech32Prefix = "tvlt"

// Address identifies a ledger participant. It is a collision-free,
// one-way digest of externally provided identity data and will be of
// size AddressLength.
type Address []byte

// NewAddress hashes and truncates into the proper size.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return h[:AddressLength]
}

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Validate returns an error if the address is not the valid size.
func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "invalid address length: %X", []byte(a))
	}
	return nil
}

// String returns a human readable string.
// Currently hex, see Bech32String for the text form used by clients.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// MarshalJSON provides a hex representation for JSON,
// to override the standard base64 []byte encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strings.ToUpper(hex.EncodeToString(a)) + `"`), nil
}

// UnmarshalJSON parses JSON in hex representation,
// to override the standard base64 []byte encoding.
func (a *Address) UnmarshalJSON(src []byte) error {
	var raw string
	if len(src) >= 2 && src[0] == '"' && src[len(src)-1] == '"' {
		raw = string(src[1 : len(src)-1])
	} else {
		raw = string(src)
	}
	if raw == "" {
		*a = nil
		return nil
	}
	bz, err := hex.DecodeString(raw)
	if err != nil {
		return errors.Wrap(errors.ErrInput, "address must be hex encoded")
	}
	*a = bz
	return nil
}

// Bech32String converts given address into its bech32 text
// representation, for example tvlt1...
func (a Address) Bech32String() (string, error) {
	payload, err := bech32.ConvertBits(a, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "convert bits")
	}
	enc, err := bech32.Encode(Bech32Prefix, payload)
	if err != nil {
		return "", errors.Wrap(err, "bech32 encode")
	}
	return enc, nil
}

// AddressFromBech32 decodes a bech32 text representation of an address.
// The human readable part must match Bech32Prefix.
func AddressFromBech32(enc string) (Address, error) {
	hrp, payload, err := bech32.Decode(enc)
	if err != nil {
		return nil, errors.Wrap(err, "bech32 decode")
	}
	if hrp != Bech32Prefix {
		return nil, errors.Wrapf(errors.ErrInput, "unexpected prefix %q", hrp)
	}
	raw, err := bech32.ConvertBits(payload, 5, 8, false)
	if err != nil {
		return nil, errors.Wrap(err, "convert bits")
	}
	addr := Address(raw)
	return addr, addr.Validate()
}
