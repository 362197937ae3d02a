package usecase

import (
	"context"
	"errors"
	"testing"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/follow"
	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendFollowRequest_RepeatedSendKeepsOnePendingRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.mentor(user.User{})
	mentee := f.mentee(user.User{})
	uc := f.followRequests()

	first, err := uc.SendFollowRequest(ctx, as(mentee), mentor.ID)
	require.NoError(t, err)
	second, err := uc.SendFollowRequest(ctx, as(mentee), mentor.ID)
	require.NoError(t, err)

	rows, err := f.requests.List(ctx, follow.Filter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, follow.StatusPending, rows[0].Status)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt)
}

func TestSendFollowRequest_ResendAfterRejectReturnsToPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.mentor(user.User{})
	mentee := f.mentee(user.User{})
	uc := f.followRequests()

	created, err := uc.SendFollowRequest(ctx, as(mentee), mentor.ID)
	require.NoError(t, err)
	_, err = uc.RespondFollowRequest(ctx, as(mentor), mentee.ID, follow.ActionReject)
	require.NoError(t, err)

	again, err := uc.SendFollowRequest(ctx, as(mentee), mentor.ID)
	require.NoError(t, err)
	assert.Equal(t, follow.StatusPending, again.Status)
	assert.Equal(t, created.CreatedAt, again.CreatedAt)
	assert.True(t, again.UpdatedAt.After(created.UpdatedAt))

	rows, err := f.requests.List(ctx, follow.Filter{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSendFollowRequest_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.mentor(user.User{})
	otherMentor := f.mentor(user.User{})
	mentee := f.mentee(user.User{})
	otherMentee := f.mentee(user.User{})
	uc := f.followRequests()

	tests := []struct {
		name   string
		auth   domain.AuthContext
		target uuid.UUID
		want   error
	}{
		{name: "anonymous", auth: domain.AuthContext{}, target: mentor.ID, want: domain.ErrUnauthorized},
		{name: "unknown actor", auth: domain.AuthContext{UserID: uuid.New()}, target: mentor.ID, want: domain.ErrNotFound},
		{name: "mentor cannot send", auth: as(otherMentor), target: mentor.ID, want: domain.ErrForbidden},
		{name: "self follow", auth: as(mentee), target: mentee.ID, want: domain.ErrInvalidOperation},
		{name: "unknown target", auth: as(mentee), target: uuid.New(), want: domain.ErrNotFound},
		{name: "target is a mentee", auth: as(mentee), target: otherMentee.ID, want: domain.ErrInvalidOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.SendFollowRequest(ctx, tt.auth, tt.target)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	rows, err := f.requests.List(ctx, follow.Filter{})
	require.NoError(t, err)
	assert.Empty(t, rows, "failed validation must not write")
	assert.Empty(t, f.notifier.sent)
}

func TestRespondFollowRequest_AcceptAndNotify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.mentor(user.User{})
	mentee := f.mentee(user.User{})
	uc := f.followRequests()

	_, err := uc.SendFollowRequest(ctx, as(mentee), mentor.ID)
	require.NoError(t, err)

	req, err := uc.RespondFollowRequest(ctx, as(mentor), mentee.ID, follow.ActionAccept)
	require.NoError(t, err)
	assert.Equal(t, follow.StatusAccepted, req.Status)

	require.Len(t, f.notifier.sent, 2)
	assert.Equal(t, "received", f.notifier.sent[0].kind)
	assert.Equal(t, mentee.ID, f.notifier.sent[0].from)
	assert.Equal(t, "answered", f.notifier.sent[1].kind)
	assert.Equal(t, follow.StatusAccepted, f.notifier.sent[1].req.Status)
}

func TestRespondFollowRequest_OnlyPendingCanBeAnswered(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.mentor(user.User{})
	mentee := f.mentee(user.User{})
	uc := f.followRequests()

	_, err := uc.SendFollowRequest(ctx, as(mentee), mentor.ID)
	require.NoError(t, err)
	_, err = uc.RespondFollowRequest(ctx, as(mentor), mentee.ID, follow.ActionAccept)
	require.NoError(t, err)

	_, err = uc.RespondFollowRequest(ctx, as(mentor), mentee.ID, follow.ActionReject)
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))

	row, err := f.requests.Find(ctx, mentor.ID, mentee.ID)
	require.NoError(t, err)
	assert.Equal(t, follow.StatusAccepted, row.Status)
}

func TestRespondFollowRequest_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.mentor(user.User{})
	stranger := f.mentor(user.User{})
	mentee := f.mentee(user.User{})
	uc := f.followRequests()

	_, err := uc.SendFollowRequest(ctx, as(mentee), mentor.ID)
	require.NoError(t, err)

	_, err = uc.RespondFollowRequest(ctx, domain.AuthContext{}, mentee.ID, follow.ActionAccept)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	_, err = uc.RespondFollowRequest(ctx, as(mentee), mentee.ID, follow.ActionAccept)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = uc.RespondFollowRequest(ctx, as(mentor), mentee.ID, follow.Action("MAYBE"))
	assert.True(t, errors.Is(err, domain.ErrInvalidOperation))

	_, err = uc.RespondFollowRequest(ctx, as(stranger), mentee.ID, follow.ActionAccept)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "mentor not on the row")

	row, err := f.requests.Find(ctx, mentor.ID, mentee.ID)
	require.NoError(t, err)
	assert.Equal(t, follow.StatusPending, row.Status)
}

func TestFollowRequest_StoreFailurePropagates(t *testing.T) {
	f := newFixture(t)
	mentor := f.mentor(user.User{})
	mentee := f.mentee(user.User{})

	boom := errors.New("connection refused")
	f.store.Fail = boom

	_, err := f.followRequests().SendFollowRequest(context.Background(), as(mentee), mentor.ID)
	assert.ErrorIs(t, err, boom)
}
