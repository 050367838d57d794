package live

import (
	"sort"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/assetdash/assetdash/internal/common/apperrors"
	"github.com/assetdash/assetdash/pkg/api"
	"github.com/assetdash/assetdash/pkg/types"
)

const sessionIDLength = 12

// Session is the filter state of one live view client. Only the goroutine
// serving the connection mutates it; the registry hands out snapshots.
type Session struct {
	ID        string
	Criteria  types.FilterCriteria
	Selected  string
	LastSeq   uint64
	StartedAt time.Time
	applied   bool
}

func newSessionID() string {
	id, _ := gonanoid.New(sessionIDLength)
	return id
}

// Apply folds req into the session state. It reports false for a request
// whose Seq is not newer than the last applied one; such requests are
// answered by a later response and are dropped.
func (s *Session) Apply(req api.LiveRequest) bool {
	if s.applied && req.Seq <= s.LastSeq {
		return false
	}
	s.applied = true
	s.LastSeq = req.Seq
	if req.Reset {
		s.Criteria = types.FilterCriteria{}
		s.Selected = ""
		return true
	}
	s.Criteria = req.Criteria.Normalized()
	s.Selected = req.Selected
	return true
}

// SessionInfo is the externally visible summary of a session.
type SessionInfo struct {
	ID        string               `json:"id"`
	Criteria  types.FilterCriteria `json:"criteria"`
	Selected  string               `json:"selected,omitempty"`
	LastSeq   uint64               `json:"lastSeq"`
	StartedAt time.Time            `json:"startedAt"`
}

func (s *Session) info() SessionInfo {
	return SessionInfo{
		ID:        s.ID,
		Criteria:  s.Criteria,
		Selected:  s.Selected,
		LastSeq:   s.LastSeq,
		StartedAt: s.StartedAt,
	}
}

type Registry struct {
	mu       sync.RWMutex
	max      int
	sessions map[string]SessionInfo
}

// NewRegistry returns a registry holding at most max sessions; zero means
// no limit.
func NewRegistry(max int) *Registry {
	return &Registry{
		max:      max,
		sessions: make(map[string]SessionInfo),
	}
}

func (r *Registry) Create(s *Session) apperrors.Error {
	if s == nil || s.ID == "" {
		return ErrInvalidSession
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[s.ID]; exists {
		return ErrAlreadyExists
	}
	if r.max > 0 && len(r.sessions) >= r.max {
		return ErrTooManySessions
	}
	r.sessions[s.ID] = s.info()
	return nil
}

// Update records the current state of s.
func (r *Registry) Update(s *Session) apperrors.Error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[s.ID]; !exists {
		return ErrInvalidSession
	}
	r.sessions[s.ID] = s.info()
	return nil
}

func (r *Registry) Get(id string) (SessionInfo, apperrors.Error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if info, exists := r.sessions[id]; exists {
		return info, nil
	}
	return SessionInfo{}, ErrInvalidSession
}

// List returns the sessions ordered by start time.
func (r *Registry) List() []SessionInfo {
	r.mu.RLock()
	list := make([]SessionInfo, 0, len(r.sessions))
	for _, info := range r.sessions {
		list = append(list, info)
	}
	r.mu.RUnlock()
	sort.Slice(list, func(i, j int) bool {
		if list[i].StartedAt.Equal(list[j].StartedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].StartedAt.Before(list[j].StartedAt)
	})
	return list
}

func (r *Registry) Delete(id string) apperrors.Error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[id]; !exists {
		return ErrInvalidSession
	}
	delete(r.sessions, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
