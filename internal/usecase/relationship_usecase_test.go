package usecase

import (
	"context"
	"testing"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/follow"
	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationship_AcceptedMenteeMovesOutOfPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.mentor(user.User{})
	y := f.mentee(user.User{})
	z := f.mentee(user.User{})

	uc := f.followRequests()
	_, err := uc.SendFollowRequest(ctx, as(y), x.ID)
	require.NoError(t, err)
	_, err = uc.SendFollowRequest(ctx, as(z), x.ID)
	require.NoError(t, err)
	_, err = uc.RespondFollowRequest(ctx, as(x), y.ID, follow.ActionAccept)
	require.NoError(t, err)

	rel := f.relationship()

	mentees, err := rel.MyMentees(ctx, as(x))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{y.ID}, ids(mentees))
	assert.Empty(t, mentees[0].PasswordHash)

	pending, err := rel.MyPendingRequests(ctx, as(x))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, z.ID, pending[0].MenteeID)
	require.NotNil(t, pending[0].Mentor)
	require.NotNil(t, pending[0].Mentee)
	assert.Equal(t, x.ID, pending[0].Mentor.ID)
	assert.Equal(t, z.ID, pending[0].Mentee.ID)

	recs, err := f.recommendation().RecommendMentors(ctx, as(y))
	require.NoError(t, err)
	assert.NotContains(t, mentorIDs(recs), x.ID)
}

func TestRelationship_PendingNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	x := f.mentor(user.User{})
	older := f.mentee(user.User{})
	newer := f.mentee(user.User{})

	uc := f.followRequests()
	_, err := uc.SendFollowRequest(ctx, as(older), x.ID)
	require.NoError(t, err)
	_, err = uc.SendFollowRequest(ctx, as(newer), x.ID)
	require.NoError(t, err)

	pending, err := f.relationship().MyPendingRequests(ctx, as(x))
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, newer.ID, pending[0].MenteeID)
	assert.Equal(t, older.ID, pending[1].MenteeID)
}

func TestRelationship_MenteeCallerGetsEmptyLists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	y := f.mentee(user.User{})

	mentees, err := f.relationship().MyMentees(ctx, as(y))
	require.NoError(t, err)
	assert.NotNil(t, mentees)
	assert.Empty(t, mentees)

	pending, err := f.relationship().MyPendingRequests(ctx, as(y))
	require.NoError(t, err)
	assert.NotNil(t, pending)
	assert.Empty(t, pending)
}

func TestRelationship_RequiresActor(t *testing.T) {
	f := newFixture(t)
	_, err := f.relationship().MyMentees(context.Background(), domain.AuthContext{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
