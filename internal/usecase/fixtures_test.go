package usecase

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"testing"
	"time"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/follow"
	"mentorlink/internal/domain/user"
	"mentorlink/internal/repository/memory"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	t        *testing.T
	store    *memory.Store
	users    *memory.UserRepository
	requests *memory.FollowRepository
	notifier *recordingNotifier
	logger   zerolog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	return &fixture{
		t:        t,
		store:    s,
		users:    s.Users(),
		requests: s.FollowRequests(),
		notifier: &recordingNotifier{},
		logger:   zerolog.Nop(),
	}
}

func (f *fixture) add(u user.User) user.User {
	f.t.Helper()
	if u.Email == "" {
		u.Email = uuid.NewString() + "@example.com"
	}
	if u.Name == "" {
		u.Name = string(u.Role) + " " + u.Email
	}
	created, err := f.users.Create(context.Background(), u)
	require.NoError(f.t, err)
	return created
}

func (f *fixture) mentor(u user.User) user.User {
	u.Role = user.RoleMentor
	return f.add(u)
}

func (f *fixture) mentee(u user.User) user.User {
	u.Role = user.RoleMentee
	return f.add(u)
}

func (f *fixture) followRequests() *FollowRequest {
	return NewFollowRequestUsecase(f.users, f.requests, f.notifier, f.logger)
}

func (f *fixture) relationship() *Relationship {
	return NewRelationshipUsecase(f.users, f.requests)
}

func (f *fixture) recommendation() *Recommendation {
	return NewRecommendationUsecase(f.users, f.logger)
}

func as(u user.User) domain.AuthContext {
	return domain.AuthContext{UserID: u.ID}
}

func ids(users []user.User) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

func mentorIDs(recs []RecommendedMentor) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Mentor.ID)
	}
	return out
}

type notification struct {
	kind string
	req  follow.Request
	from uuid.UUID
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) FollowRequestReceived(req follow.Request, mentee user.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{kind: "received", req: req, from: mentee.ID})
}

func (n *recordingNotifier) FollowRequestAnswered(req follow.Request, mentor user.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{kind: "answered", req: req, from: mentor.ID})
}

type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    int
	deletes []string
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *mapCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *mapCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, pattern)
	for k := range c.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.data, k)
		}
	}
	return nil
}

func (c *mapCache) Incr(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if b, ok := c.data[key]; ok {
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
	}
	b, err := json.Marshal(n + 1)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

// hookedUsers runs afterQuery once the wrapped store has answered a Query.
type hookedUsers struct {
	user.Repository
	afterQuery func(ctx context.Context)
}

func (r *hookedUsers) Query(ctx context.Context, p user.Predicate, limit int, order user.Order) ([]user.User, error) {
	out, err := r.Repository.Query(ctx, p, limit, order)
	if r.afterQuery != nil {
		r.afterQuery(ctx)
	}
	return out, err
}
