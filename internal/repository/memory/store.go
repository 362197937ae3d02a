// Package memory is an in-process implementation of the user and follow
// request repositories. It honours the same keys and constraints as the
// Postgres schema and backs the usecase and handler tests.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/follow"
	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
)

type pairKey struct {
	mentorID uuid.UUID
	menteeID uuid.UUID
}

type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]user.User
	requests map[pairKey]follow.Request
	last     time.Time

	// Now is the clock used for timestamps. It defaults to a strictly
	// increasing wall clock so creation order is always observable.
	Now func() time.Time
	// Fail, when set, is returned by every operation.
	Fail error
}

func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]user.User),
		requests: make(map[pairKey]follow.Request),
	}
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

func (s *Store) Users() *UserRepository            { return &UserRepository{s: s} }
func (s *Store) FollowRequests() *FollowRepository { return &FollowRepository{s: s} }

// accepted backs user.Relations for Query. Callers must hold s.mu.
func (s *Store) accepted(mentorID, menteeID uuid.UUID) bool {
	r, ok := s.requests[pairKey{mentorID, menteeID}]
	return ok && r.Status == follow.StatusAccepted
}

type relations struct{ s *Store }

func (r relations) Accepted(mentorID, menteeID uuid.UUID) bool {
	return r.s.accepted(mentorID, menteeID)
}

type UserRepository struct{ s *Store }

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return user.User{}, r.s.Fail
	}
	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, fmt.Errorf("find user: %w", domain.ErrNotFound)
	}
	return clone(u), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return user.User{}, r.s.Fail
	}
	if u, ok := r.s.byEmail(email); ok {
		return clone(u), nil
	}
	return user.User{}, fmt.Errorf("find user by email: %w", domain.ErrNotFound)
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return false, r.s.Fail
	}
	_, ok := r.s.byEmail(email)
	return ok, nil
}

func (s *Store) byEmail(email string) (user.User, bool) {
	email = strings.TrimSpace(email)
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return user.User{}, false
}

func (r *UserRepository) Query(_ context.Context, p user.Predicate, limit int, order user.Order) ([]user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}

	out := make([]user.User, 0)
	rel := relations{s: r.s}
	for _, u := range r.s.users {
		if user.Match(p, u, rel) {
			out = append(out, clone(u))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if order == user.OrderOldestFirst {
			a, b = b, a
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) > 0
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *UserRepository) Create(_ context.Context, u user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return user.User{}, r.s.Fail
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if _, ok := r.s.users[u.ID]; ok {
		return user.User{}, fmt.Errorf("create user: %w: users_pkey", domain.ErrConstraintViolation)
	}
	if _, ok := r.s.byEmail(u.Email); ok {
		return user.User{}, fmt.Errorf("create user: %w: users_email_lower_key", domain.ErrConstraintViolation)
	}
	if !u.Role.Valid() {
		return user.User{}, fmt.Errorf("create user: %w: role", domain.ErrConstraintViolation)
	}
	if strings.TrimSpace(u.ImageURL) == "" {
		u.ImageURL = user.DefaultImageURL
	}
	if u.Companies == nil {
		u.Companies = []string{}
	}
	if u.CompaniesInterested == nil {
		u.CompaniesInterested = []string{}
	}
	now := r.s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = clone(u)
	return clone(u), nil
}

func (r *UserRepository) UpdateImageURL(_ context.Context, id uuid.UUID, imageURL string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return user.User{}, r.s.Fail
	}
	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, fmt.Errorf("update image: %w", domain.ErrNotFound)
	}
	u.ImageURL = imageURL
	u.UpdatedAt = r.s.now()
	r.s.users[id] = u
	return clone(u), nil
}

type FollowRepository struct{ s *Store }

func (r *FollowRepository) Upsert(_ context.Context, mentorID, menteeID uuid.UUID, status follow.Status) (follow.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return follow.Request{}, r.s.Fail
	}
	if err := r.s.checkPair(mentorID, menteeID, status); err != nil {
		return follow.Request{}, fmt.Errorf("upsert follow request: %w", err)
	}

	key := pairKey{mentorID, menteeID}
	req, ok := r.s.requests[key]
	if !ok {
		now := r.s.now()
		req = follow.Request{MentorID: mentorID, MenteeID: menteeID, Status: status, CreatedAt: now, UpdatedAt: now}
	} else if req.Status != status {
		req.Status = status
		req.UpdatedAt = r.s.now()
	}
	r.s.requests[key] = req
	return req, nil
}

func (r *FollowRepository) UpdateStatus(_ context.Context, mentorID, menteeID uuid.UUID, status follow.Status, onlyFrom ...follow.Status) (follow.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Fail != nil {
		return follow.Request{}, r.s.Fail
	}
	if !status.Valid() {
		return follow.Request{}, fmt.Errorf("update follow request: %w: status", domain.ErrConstraintViolation)
	}

	key := pairKey{mentorID, menteeID}
	req, ok := r.s.requests[key]
	if !ok {
		return follow.Request{}, fmt.Errorf("update follow request: %w", domain.ErrNotFound)
	}
	if len(onlyFrom) > 0 && !slices.Contains(onlyFrom, req.Status) {
		return follow.Request{}, fmt.Errorf("%w: request is %s", domain.ErrInvalidOperation, req.Status)
	}
	req.Status = status
	req.UpdatedAt = r.s.now()
	r.s.requests[key] = req
	return req, nil
}

func (r *FollowRepository) Find(_ context.Context, mentorID, menteeID uuid.UUID) (follow.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return follow.Request{}, r.s.Fail
	}
	req, ok := r.s.requests[pairKey{mentorID, menteeID}]
	if !ok {
		return follow.Request{}, fmt.Errorf("find follow request: %w", domain.ErrNotFound)
	}
	return req, nil
}

func (r *FollowRepository) List(_ context.Context, f follow.Filter) ([]follow.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.Fail != nil {
		return nil, r.s.Fail
	}

	out := make([]follow.Request, 0)
	for _, req := range r.s.requests {
		if f.MentorID != nil && req.MentorID != *f.MentorID {
			continue
		}
		if f.MenteeID != nil && req.MenteeID != *f.MenteeID {
			continue
		}
		if f.Status != nil && req.Status != *f.Status {
			continue
		}
		if f.WithMentor {
			m := clone(r.s.users[req.MentorID])
			req.Mentor = &m
		}
		if f.WithMentee {
			e := clone(r.s.users[req.MenteeID])
			req.Mentee = &e
		}
		out = append(out, req)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		ta, tb := a.CreatedAt, b.CreatedAt
		if f.Order == follow.OrderUpdatedDesc {
			ta, tb = a.UpdatedAt, b.UpdatedAt
		}
		if !ta.Equal(tb) {
			return ta.After(tb)
		}
		if c := bytes.Compare(a.MentorID[:], b.MentorID[:]); c != 0 {
			return c > 0
		}
		return bytes.Compare(a.MenteeID[:], b.MenteeID[:]) > 0
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) checkPair(mentorID, menteeID uuid.UUID, status follow.Status) error {
	if mentorID == menteeID {
		return fmt.Errorf("%w: follow_requests_no_self", domain.ErrConstraintViolation)
	}
	if _, ok := s.users[mentorID]; !ok {
		return fmt.Errorf("%w: follow_requests_mentor_id_fkey", domain.ErrConstraintViolation)
	}
	if _, ok := s.users[menteeID]; !ok {
		return fmt.Errorf("%w: follow_requests_mentee_id_fkey", domain.ErrConstraintViolation)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: status", domain.ErrConstraintViolation)
	}
	return nil
}

func clone(u user.User) user.User {
	u.Companies = slices.Clone(u.Companies)
	u.CompaniesInterested = slices.Clone(u.CompaniesInterested)
	if u.YearOfStudy != nil {
		y := *u.YearOfStudy
		u.YearOfStudy = &y
	}
	if u.Domain != nil {
		d := *u.Domain
		u.Domain = &d
	}
	if u.Branch != nil {
		b := *u.Branch
		u.Branch = &b
	}
	return u
}

var (
	_ user.Repository   = (*UserRepository)(nil)
	_ follow.Repository = (*FollowRepository)(nil)
)
