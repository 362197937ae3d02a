package user

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type acceptedSet map[[2]uuid.UUID]bool

func (s acceptedSet) Accepted(mentorID, menteeID uuid.UUID) bool {
	return s[[2]uuid.UUID{mentorID, menteeID}]
}

func ptr[T any](v T) *T { return &v }

func TestMatch(t *testing.T) {
	menteeID := uuid.New()
	mentor := User{
		ID:          uuid.New(),
		Name:        "Ada Lovelace",
		Role:        RoleMentor,
		Domain:      ptr(DomainSoftware),
		Branch:      ptr(BranchCSE),
		YearOfStudy: ptr(4),
		Companies:   []string{"Acme", "Globex"},
	}

	tests := []struct {
		name string
		p    Predicate
		rel  Relations
		want bool
	}{
		{name: "nil matches", p: nil, want: true},
		{name: "empty and matches", p: And{}, want: true},
		{name: "empty or matches nothing", p: Or{}, want: false},
		{name: "role", p: RoleIs{Role: RoleMentor}, want: true},
		{name: "role mismatch", p: RoleIs{Role: RoleMentee}, want: false},
		{name: "name case insensitive", p: NameContains{Substring: "LOVE"}, want: true},
		{name: "name miss", p: NameContains{Substring: "babbage"}, want: false},
		{name: "domain", p: DomainIs{Domain: DomainSoftware}, want: true},
		{name: "branch mismatch", p: BranchIs{Branch: BranchECE}, want: false},
		{name: "year", p: YearOfStudyIs{Year: 4}, want: true},
		{name: "company member", p: HasCompany{Company: "Globex"}, want: true},
		{name: "company is case sensitive", p: HasCompany{Company: "globex"}, want: false},
		{name: "any company", p: HasAnyCompany{Companies: []string{"Initech", "Acme"}}, want: true},
		{name: "any company empty", p: HasAnyCompany{}, want: false},
		{name: "or with one hit", p: Or{DomainIs{Domain: DomainMarketing}, BranchIs{Branch: BranchCSE}}, want: true},
		{name: "and with one miss", p: And{RoleIs{Role: RoleMentor}, DomainIs{Domain: DomainMarketing}}, want: false},
		{name: "no relations means not excluded", p: NoAcceptedRequestWith{MenteeID: menteeID}, want: true},
		{
			name: "accepted excluded",
			p:    NoAcceptedRequestWith{MenteeID: menteeID},
			rel:  acceptedSet{{mentor.ID, menteeID}: true},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.p, mentor, tt.rel))
		})
	}
}

func TestMatch_MissingOptionalFields(t *testing.T) {
	u := User{Role: RoleMentee}
	assert.False(t, Match(DomainIs{Domain: DomainOther}, u, nil))
	assert.False(t, Match(BranchIs{Branch: BranchOther}, u, nil))
	assert.False(t, Match(YearOfStudyIs{Year: 1}, u, nil))
}

func TestNormalizeCompanies(t *testing.T) {
	got := NormalizeCompanies([]string{" Acme ", "", "Acme", "Globex", "  "})
	assert.Equal(t, []string{"Acme", "Globex"}, got)
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, RoleMentor.Valid())
	assert.False(t, Role("ADMIN").Valid())
	assert.True(t, DomainAnalyst.Valid())
	assert.False(t, Domain("software").Valid())
	assert.True(t, BranchMME.Valid())
	assert.False(t, Branch("XYZ").Valid())
}
