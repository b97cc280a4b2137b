package tvtest

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/lockstead/timevault"
)

// RandAddr returns a random valid address. Every call returns a
// different value.
func RandAddr() timevault.Address {
	addr := make(timevault.Address, timevault.AddressLength)
	if _, err := rand.Read(addr); err != nil {
		panic(err)
	}
	return addr
}

// SeqAddr returns a deterministic address derived from n. Use it when
// a test needs stable, distinct identities.
func SeqAddr(n uint64) timevault.Address {
	addr := make(timevault.Address, timevault.AddressLength)
	binary.BigEndian.PutUint64(addr[timevault.AddressLength-8:], n)
	return addr
}
