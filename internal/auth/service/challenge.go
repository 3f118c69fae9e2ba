package service

import (
	"errors"
	"sync"
	"time"
)

// MaxSecondFactorAttempts is how many codes a single pending token may be
// tried with. Further attempts are refused without checking the code.
const MaxSecondFactorAttempts = 5

var (
	ErrTooManyAttempts = errors.New("too many second factor attempts")
	ErrChallengeUsed   = errors.New("pending token already used")
)

// challengeSweepInterval bounds how often expired challenges are dropped.
const challengeSweepInterval = time.Minute

type challenge struct {
	attempts int
	used     bool
	expires  time.Time
}

// challengeLedger remembers pending tokens by jti until they expire, so each
// one allows a bounded number of attempts and at most one success. Only
// tokens whose signature already verified are recorded. The zero value is
// ready to use.
type challengeLedger struct {
	mu          sync.Mutex
	entries     map[string]*challenge
	lastCleanup time.Time
}

// begin counts an attempt against jti, or refuses it when the token is spent.
func (l *challengeLedger) begin(jti string, expires, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	c, ok := l.entries[jti]
	if !ok {
		if l.entries == nil {
			l.entries = make(map[string]*challenge)
		}
		c = &challenge{expires: expires}
		l.entries[jti] = c
	}

	switch {
	case c.used:
		return ErrChallengeUsed
	case c.attempts >= MaxSecondFactorAttempts:
		return ErrTooManyAttempts
	}
	c.attempts++
	return nil
}

// consume marks jti as redeemed. Only the first caller succeeds.
func (l *challengeLedger) consume(jti string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.entries[jti]
	if !ok || c.used {
		return ErrChallengeUsed
	}
	c.used = true
	return nil
}

// sweep drops expired challenges at most once per interval. Callers hold mu.
func (l *challengeLedger) sweep(now time.Time) {
	if now.Sub(l.lastCleanup) < challengeSweepInterval {
		return
	}
	l.lastCleanup = now
	for jti, c := range l.entries {
		if !now.Before(c.expires) {
			delete(l.entries, jti)
		}
	}
}
