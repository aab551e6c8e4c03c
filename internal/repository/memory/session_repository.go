package memory

import (
	"time"

	"resolveia-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps per-chat sessions in memory. The TTL answers
// the staleness question for the supporting-text slot: an idle chat's
// settings and stored passage expire together and the chat falls back
// to the configured defaults.
type SessionRepository struct {
	cache           *cache.Cache
	defaultPhase    store.Phase
	defaultPriority store.Priority
}

func NewSessionRepository(ttl time.Duration, defaultPhase store.Phase, defaultPriority store.Priority) *SessionRepository {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache:           c,
		defaultPhase:    defaultPhase,
		defaultPriority: defaultPriority,
	}
}

// GetOrCreate returns the chat's session, building one with the
// configured defaults on a miss or after expiry.
func (r *SessionRepository) GetOrCreate(chatID string) *store.Session {
	if x, found := r.cache.Get(chatID); found {
		return x.(*store.Session)
	}
	sess := &store.Session{
		ChatID:    chatID,
		Phase:     r.defaultPhase,
		Priority:  r.defaultPriority,
		UpdatedAt: time.Now(),
	}
	r.cache.Set(chatID, sess, cache.DefaultExpiration)
	return sess
}

// Save writes the session back, refreshing its TTL.
func (r *SessionRepository) Save(session *store.Session) {
	session.UpdatedAt = time.Now()
	r.cache.Set(session.ChatID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Delete(chatID string) {
	r.cache.Delete(chatID)
}
