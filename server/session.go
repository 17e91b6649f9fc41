package server

import (
	"sync"
	"time"

	"github.com/ghie29/avmango/log"
	"github.com/ghie29/avmango/pager"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// session is one browsing view. Its reconciler holds the pagination state
// and is discarded with the session.
type session struct {
	rec  *pager.Reconciler
	seen time.Time
	used uint64
}

type sessions struct {
	mu    sync.Mutex
	ttl   time.Duration
	max   int
	clock uint64
	now   func() time.Time
	views map[string]*session
}

func newSessions(ttl time.Duration, max int) *sessions {
	return &sessions{
		ttl:   ttl,
		max:   max,
		now:   time.Now,
		views: make(map[string]*session),
	}
}

// acquire returns the session for token, opening a new one under a fresh
// token when it is empty, malformed or already reaped. At capacity the least
// recently used session is closed first.
func (s *sessions) acquire(token string) (string, *session) {
	s.mu.Lock()

	s.clock++
	if _, err := uuid.Parse(token); err == nil {
		if sess, ok := s.views[token]; ok {
			sess.seen = s.now()
			sess.used = s.clock
			s.mu.Unlock()
			return token, sess
		}
	}

	var evicted *session
	if s.max > 0 && len(s.views) >= s.max {
		oldest := lo.MinBy(lo.Entries(s.views), func(a, b lo.Entry[string, *session]) bool {
			return a.Value.used < b.Value.used
		})
		evicted = oldest.Value
		delete(s.views, oldest.Key)
		log.Debugf("evicted view %s", oldest.Key)
	}

	token = uuid.NewString()
	sess := &session{rec: pager.NewReconciler(), seen: s.now(), used: s.clock}
	s.views[token] = sess
	s.mu.Unlock()

	if evicted != nil {
		evicted.rec.Close()
	}
	log.Debugf("opened view %s", token)
	return token, sess
}

// reap closes every session idle for longer than the ttl.
func (s *sessions) reap() int {
	s.mu.Lock()
	var stale []*session
	for token, sess := range s.views {
		if s.now().Sub(sess.seen) > s.ttl {
			stale = append(stale, sess)
			delete(s.views, token)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.rec.Close()
	}
	if len(stale) > 0 {
		log.Debugf("reaped %d idle views", len(stale))
	}
	return len(stale)
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

func (s *sessions) closeAll() {
	s.mu.Lock()
	views := s.views
	s.views = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range views {
		sess.rec.Close()
	}
}
