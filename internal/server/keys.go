package server

import (
	"sync"

	"go.jetify.com/typeid/v2"

	"github.com/matzehuels/isostack/pkg/errors"
)

// KeyPrefix is the type prefix of diagram keys minted by POST /diagrams.
const KeyPrefix = "diag"

func newKey() string {
	return typeid.MustGenerate(KeyPrefix).String()
}

// isMintedKey reports whether key was generated by newKey.
func isMintedKey(key string) bool {
	id, err := typeid.Parse(key)
	return err == nil && id.Prefix() == KeyPrefix
}

func validateKey(key string) error {
	return errors.ValidateKey(key)
}

// keyLocks serializes edits per diagram key so two concurrent operations on
// the same diagram cannot lose each other's changes.
type keyLocks struct {
	mu sync.Mutex
	m  map[string]*keyLock
}

type keyLock struct {
	sync.Mutex
	refs int
}

// lock acquires the lock for key and returns its release function.
func (l *keyLocks) lock(key string) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*keyLock)
	}
	kl, ok := l.m[key]
	if !ok {
		kl = &keyLock{}
		l.m[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.Lock()
	return func() {
		kl.Unlock()
		l.mu.Lock()
		kl.refs--
		if kl.refs == 0 {
			delete(l.m, key)
		}
		l.mu.Unlock()
	}
}
