/*
Package vault implements a custodial ledger with a mandatory time
lock on withdrawals.

A bounded set of identities is admitted to the vault. Admitted
identities deposit coins of a single configured currency. Every
deposit re-anchors a lock on the full account balance; withdrawal is
only possible once the lock period has passed. Settlement of a
withdrawal is handed to an external Paymaster after all book-keeping
is done, and the whole call is rolled back if the handoff fails.

State is held in three buckets: accounts (balance, lock anchor,
admitted flag, keyed by address), a single running tally (total held,
admitted count) and the configuration.

Use NewLedger to wire store, routing and decorators into a ready
handle.
*/
package vault
