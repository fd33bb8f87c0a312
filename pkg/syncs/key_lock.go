package syncs

import "sync"

// KeyLocker provides per-key mutual exclusion.
// See [KeyLock] for an implementation.
type KeyLocker interface {
	Lock(key string)
	Unlock(key string)
}

// KeyLock is a per-key mutex: independent keys can be held concurrently
// while access to the same key is serialized. The zero value is ready to
// use.
type KeyLock struct {
	locks sync.Map
}

// Lock acquires the mutex for the given key, blocking if it is already held.
func (kl *KeyLock) Lock(key string) {
	l, _ := kl.locks.LoadOrStore(key, &sync.Mutex{})
	l.(*sync.Mutex).Lock() //nolint:forcetypeassert // Only mutexes are stored.
}

// Unlock releases the mutex for the given key.
func (kl *KeyLock) Unlock(key string) {
	l, ok := kl.locks.Load(key)
	if !ok {
		panic("syncs: unlock of unknown key " + key)
	}

	l.(*sync.Mutex).Unlock() //nolint:forcetypeassert // Only mutexes are stored.
}
