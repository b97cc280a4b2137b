package vault

import (
	"github.com/lockstead/timevault"
)

const secondsPerDay = 24 * 60 * 60

// unlockTime returns the moment the account's time lock expires.
func unlockTime(acct *Account, period timevault.UnixDuration) timevault.UnixTime {
	if acct.LockAnchor.IsZero() {
		return 0
	}
	return acct.LockAnchor.Add(period.Duration())
}

// isUnlocked reports whether the account may withdraw at the given
// time. An account that never deposited has no lock.
func isUnlocked(acct *Account, period timevault.UnixDuration, now timevault.UnixTime) bool {
	return now >= unlockTime(acct, period)
}

// remainingLockDays returns the number of full days until unlock,
// using floor division. Zero once the lock expired.
func remainingLockDays(acct *Account, period timevault.UnixDuration, now timevault.UnixTime) int64 {
	unlock := unlockTime(acct, period)
	if now >= unlock {
		return 0
	}
	return int64(unlock-now) / secondsPerDay
}
