package user

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Predicate is a composable condition over users. The set of node types is
// closed; stores translate it (SQL) or evaluate it directly with Match.
type Predicate interface {
	predicate()
}

// And matches when every child matches. An empty And matches everything.
type And []Predicate

// Or matches when at least one child matches. An empty Or matches nothing.
type Or []Predicate

type RoleIs struct{ Role Role }

// NameContains is a case-insensitive substring match on the name.
type NameContains struct{ Substring string }

type DomainIs struct{ Domain Domain }

type BranchIs struct{ Branch Branch }

type YearOfStudyIs struct{ Year int }

// HasCompany matches users whose companies contain Company.
type HasCompany struct{ Company string }

// HasAnyCompany matches users whose companies share at least one element
// with Companies.
type HasAnyCompany struct{ Companies []string }

// NoAcceptedRequestWith excludes mentors that already accepted MenteeID.
type NoAcceptedRequestWith struct{ MenteeID uuid.UUID }

func (And) predicate()                   {}
func (Or) predicate()                    {}
func (RoleIs) predicate()                {}
func (NameContains) predicate()          {}
func (DomainIs) predicate()              {}
func (BranchIs) predicate()              {}
func (YearOfStudyIs) predicate()         {}
func (HasCompany) predicate()            {}
func (HasAnyCompany) predicate()         {}
func (NoAcceptedRequestWith) predicate() {}

type Order int

const (
	OrderNewestFirst Order = iota
	OrderOldestFirst
)

// Relations answers relationship questions Match cannot derive from a single
// user row.
type Relations interface {
	Accepted(mentorID, menteeID uuid.UUID) bool
}

// Match evaluates p against u. A nil rel treats every relationship
// condition as satisfied.
func Match(p Predicate, u User, rel Relations) bool {
	switch p := p.(type) {
	case nil:
		return true
	case And:
		for _, c := range p {
			if !Match(c, u, rel) {
				return false
			}
		}
		return true
	case Or:
		for _, c := range p {
			if Match(c, u, rel) {
				return true
			}
		}
		return false
	case RoleIs:
		return u.Role == p.Role
	case NameContains:
		return strings.Contains(strings.ToLower(u.Name), strings.ToLower(p.Substring))
	case DomainIs:
		return u.Domain != nil && *u.Domain == p.Domain
	case BranchIs:
		return u.Branch != nil && *u.Branch == p.Branch
	case YearOfStudyIs:
		return u.YearOfStudy != nil && *u.YearOfStudy == p.Year
	case HasCompany:
		return slices.Contains(u.Companies, p.Company)
	case HasAnyCompany:
		for _, c := range p.Companies {
			if slices.Contains(u.Companies, c) {
				return true
			}
		}
		return false
	case NoAcceptedRequestWith:
		if rel == nil {
			return true
		}
		return !rel.Accepted(u.ID, p.MenteeID)
	default:
		return false
	}
}
