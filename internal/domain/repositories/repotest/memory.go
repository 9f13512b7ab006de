// Package repotest provides in-memory repository implementations for tests.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/snakanz/adviceApp-sub002/internal/domain/entities"
)

// Store holds every table in memory. Fail* fields inject errors into the
// matching operation.
type Store struct {
	mu sync.Mutex

	Meetings      map[uuid.UUID]*entities.Meeting
	Clients       map[uuid.UUID]*entities.Client
	Pending       map[uuid.UUID]*entities.PendingActionItem
	Opportunities []*entities.BusinessOpportunity
	ActionItems   []*entities.ActionItem
	Todos         []*entities.ClientTodo
	Events        map[string]*entities.WebhookEvent

	FailGetMeeting      error
	FailQuickSummary    error
	FailDetailedSummary error
	FailDeletePending   error
	FailCreatePending   error
	FailRollup          error
	FailCreateEvent     error
	StatusWrites        []entities.MeetingStatus
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		Meetings: map[uuid.UUID]*entities.Meeting{},
		Clients:  map[uuid.UUID]*entities.Client{},
		Pending:  map[uuid.UUID]*entities.PendingActionItem{},
		Events:   map[string]*entities.WebhookEvent{},
	}
}

// AddClient stores a client
func (s *Store) AddClient(c *entities.Client) *entities.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.Clients[c.ID] = c
	return c
}

// AddMeeting stores a meeting
func (s *Store) AddMeeting(m *entities.Meeting) *entities.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = entities.MeetingStatusScheduled
	}
	s.Meetings[m.ID] = m
	return m
}

// Meeting returns a copy of a stored meeting
func (s *Store) Meeting(id uuid.UUID) entities.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.Meetings[id]; ok {
		return *m
	}
	return entities.Meeting{}
}

// Client returns a copy of a stored client
func (s *Store) Client(id uuid.UUID) entities.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.Clients[id]; ok {
		return *c
	}
	return entities.Client{}
}

// EventCount returns the number of ledger rows
func (s *Store) EventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Events)
}

func strPtr(v string) *string { return &v }

// MeetingRepo adapts Store to repositories.MeetingRepository
type MeetingRepo struct{ *Store }

func (r MeetingRepo) get(id uuid.UUID, withClient bool) *entities.Meeting {
	m, ok := r.Meetings[id]
	if !ok {
		return nil
	}
	cp := *m
	if withClient && cp.ClientID != nil {
		if c, ok := r.Clients[*cp.ClientID]; ok {
			cc := *c
			cp.Client = &cc
		}
	}
	return &cp
}

func (r MeetingRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailGetMeeting != nil {
		return nil, r.FailGetMeeting
	}
	return r.get(id, false), nil
}

func (r MeetingRepo) GetWithClient(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailGetMeeting != nil {
		return nil, r.FailGetMeeting
	}
	return r.get(id, true), nil
}

func (r MeetingRepo) GetByRecordingBotID(ctx context.Context, botID string) (*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, m := range r.Meetings {
		if m.RecordingBotID != nil && *m.RecordingBotID == botID {
			return r.get(id, true), nil
		}
	}
	return nil, nil
}

func (r MeetingRepo) mutate(id uuid.UUID, fn func(m *entities.Meeting)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.Meetings[id]
	if !ok {
		return fmt.Errorf("%w: %s", entities.ErrMeetingNotFound, id)
	}
	fn(m)
	m.UpdatedAt = time.Now()
	return nil
}

func (r MeetingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MeetingStatus) error {
	return r.mutate(id, func(m *entities.Meeting) {
		m.Status = status
		r.StatusWrites = append(r.StatusWrites, status)
	})
}

func (r MeetingRepo) SaveTranscript(ctx context.Context, id uuid.UUID, transcript string, source entities.TranscriptSource) error {
	return r.mutate(id, func(m *entities.Meeting) {
		m.Transcript = strPtr(transcript)
		m.TranscriptSource = source
	})
}

func (r MeetingRepo) SaveQuickSummary(ctx context.Context, id uuid.UUID, summary, actionPoints string, at time.Time) error {
	if err := r.failure(&r.FailQuickSummary); err != nil {
		return err
	}
	return r.mutate(id, func(m *entities.Meeting) {
		m.QuickSummary = strPtr(summary)
		m.ActionPoints = strPtr(actionPoints)
		m.LastSummarizedAt = &at
	})
}

func (r MeetingRepo) SaveDetailedSummary(ctx context.Context, id uuid.UUID, summary string) error {
	if err := r.failure(&r.FailDetailedSummary); err != nil {
		return err
	}
	return r.mutate(id, func(m *entities.Meeting) {
		m.DetailedSummary = strPtr(summary)
	})
}

func (r MeetingRepo) ListRecentByClient(ctx context.Context, clientID uuid.UUID, limit int) ([]*entities.Meeting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.Meeting
	for _, m := range r.Meetings {
		if m.ClientID != nil && *m.ClientID == clientID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r MeetingRepo) HasUpcomingForClient(ctx context.Context, clientID uuid.UUID, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.Meetings {
		if m.ClientID != nil && *m.ClientID == clientID && m.StartsAt.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) failure(f *error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *f
}

// PendingRepo adapts Store to repositories.PendingActionItemRepository
type PendingRepo struct{ *Store }

func (r PendingRepo) DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailDeletePending != nil {
		return r.FailDeletePending
	}
	for id, item := range r.Pending {
		if item.MeetingID == meetingID {
			delete(r.Pending, id)
		}
	}
	return nil
}

func (r PendingRepo) CreateBatch(ctx context.Context, items []*entities.PendingActionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreatePending != nil {
		return r.FailCreatePending
	}
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		cp := *item
		r.Pending[item.ID] = &cp
	}
	return nil
}

func (r PendingRepo) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*entities.PendingActionItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.PendingActionItem
	for _, item := range r.Pending {
		if item.MeetingID == meetingID {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

// ClientRepo adapts Store to repositories.ClientRepository
type ClientRepo struct{ *Store }

func (r ClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r ClientRepo) ListBusinessOpportunities(ctx context.Context, clientID uuid.UUID) ([]*entities.BusinessOpportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.BusinessOpportunity
	for _, o := range r.Opportunities {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r ClientRepo) ListOutstandingActionItems(ctx context.Context, meetingIDs []uuid.UUID) ([]*entities.ActionItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[uuid.UUID]bool, len(meetingIDs))
	for _, id := range meetingIDs {
		ids[id] = true
	}
	var out []*entities.ActionItem
	for _, item := range r.ActionItems {
		if ids[item.MeetingID] && !item.Completed {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r ClientRepo) ListOutstandingTodos(ctx context.Context, clientID uuid.UUID) ([]*entities.ClientTodo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entities.ClientTodo
	for _, todo := range r.Todos {
		if todo.ClientID == clientID && !todo.Completed {
			out = append(out, todo)
		}
	}
	return out, nil
}

func (r ClientRepo) SaveRollupSummary(ctx context.Context, clientID uuid.UUID, summary string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailRollup != nil {
		return r.FailRollup
	}
	c, ok := r.Clients[clientID]
	if !ok {
		return fmt.Errorf("%w: %s", entities.ErrClientNotFound, clientID)
	}
	c.RollupSummary = strPtr(summary)
	c.RollupGeneratedAt = &at
	return nil
}

func (r ClientRepo) SavePipelineNextSteps(ctx context.Context, clientID, userID uuid.UUID, steps string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Clients[clientID]
	if !ok || c.UserID != userID {
		return fmt.Errorf("%w: %s for user %s", entities.ErrClientNotFound, clientID, userID)
	}
	c.PipelineNextSteps = strPtr(steps)
	c.PipelineNextStepsGeneratedAt = &at
	return nil
}

// WebhookEventRepo adapts Store to repositories.WebhookEventRepository
type WebhookEventRepo struct{ *Store }

func (r WebhookEventRepo) CreateIfAbsent(ctx context.Context, event *entities.WebhookEvent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailCreateEvent != nil {
		return false, r.FailCreateEvent
	}
	if _, ok := r.Events[event.WebhookID]; ok {
		return false, nil
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	cp := *event
	r.Events[event.WebhookID] = &cp
	return true, nil
}
