package notify

import "sync"

// Registry tracks which websocket session currently speaks for each user.
// A user has at most one live session; a re-register replaces the previous
// mapping, and the superseded session's eventual disconnect must not evict
// the newer one. Removal is therefore keyed by session id, not user id.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]string
}

func NewRegistry() *Registry {
	return &Registry{byUser: make(map[string]string)}
}

// Register binds userID to sessionID, returning the session it replaced.
// An empty userID is ignored.
func (r *Registry) Register(userID, sessionID string) (previous string, replaced bool) {
	if userID == "" {
		return "", false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.byUser[userID]
	r.byUser[userID] = sessionID
	if ok && previous != sessionID {
		return previous, true
	}
	return "", false
}

// Unregister removes the mapping owned by sessionID. If the session was
// already superseded this is a no-op.
func (r *Registry) Unregister(sessionID string) (userID string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for uid, sid := range r.byUser {
		if sid == sessionID {
			delete(r.byUser, uid)
			return uid, true
		}
	}
	return "", false
}

func (r *Registry) IsPresent(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byUser[userID]
	return ok
}

func (r *Registry) SessionFor(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sid, ok := r.byUser[userID]
	return sid, ok
}

// ActiveSessionCount reports how many live sessions the user holds,
// which is 0 or 1 under the one-session-per-user rule.
func (r *Registry) ActiveSessionCount(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.byUser[userID]; ok {
		return 1
	}
	return 0
}
