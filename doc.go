/*
Package timevault defines the common interfaces that tie the module
together: message handlers and decorators, transactions and messages,
key-value storage with cache-wrap rollback, and the context helpers
used to pass block time and loggers between layers.

The actual ledger logic lives in the extensions under x/, most notably
x/vault, which implements a capacity-bounded, time-locked custody
ledger. The packages errors, store, orm and app provide the supporting
machinery the extensions are built on.
*/
package timevault
