package seeder

import (
	"context"
	"errors"
	"testing"

	"mentorlink/internal/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDB struct{ database.DB }

type recordingSeeder struct {
	name string
	err  error
	log  *[]string
}

func (s recordingSeeder) Name() string { return s.name }

func (s recordingSeeder) Run(context.Context, database.DB) error {
	*s.log = append(*s.log, s.name)
	return s.err
}

func TestRunner_RunsInOrderAndStopsOnError(t *testing.T) {
	var ran []string
	boom := errors.New("boom")

	r := Runner{
		Seeders: []Seeder{
			recordingSeeder{name: "users", log: &ran},
			nil,
			recordingSeeder{name: "follow_requests", err: boom, log: &ran},
			recordingSeeder{name: "never", log: &ran},
		},
		Logger: zerolog.Nop(),
	}

	err := r.Run(context.Background(), stubDB{})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "seed follow_requests")
	assert.Equal(t, []string{"users", "follow_requests"}, ran)
}

func TestRunner_NilDB(t *testing.T) {
	err := Runner{Logger: zerolog.Nop()}.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestDefaults_UsersBeforeFollowRequests(t *testing.T) {
	seeders := Defaults("secret123")
	require.Len(t, seeders, 2)
	assert.Equal(t, "users", seeders[0].Name())
	assert.Equal(t, "follow_requests", seeders[1].Name())
}

func TestDemoUsers_AreValidSignups(t *testing.T) {
	seen := map[string]bool{}
	for _, u := range demoUsers() {
		assert.True(t, u.Role.Valid(), u.Email)
		assert.False(t, seen[u.Email], "duplicate %s", u.Email)
		seen[u.Email] = true
	}
}
