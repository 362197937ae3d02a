package matching

import (
	"slices"

	"mentorlink/internal/domain/user"
)

// Signal names one profile attribute a mentee and a mentor can share.
type Signal string

const (
	SignalDomain      Signal = "domain"
	SignalBranch      Signal = "branch"
	SignalYearOfStudy Signal = "year_of_study"
	SignalCompanies   Signal = "companies"
)

type Result struct {
	Score   int
	Matched []Signal
}

// Signals returns the predicates a mentor may satisfy to be relevant to the
// mentee. Only attributes the mentee actually filled in produce a signal.
func Signals(mentee user.User) []user.Predicate {
	out := make([]user.Predicate, 0, 4)
	if mentee.Domain != nil {
		out = append(out, user.DomainIs{Domain: *mentee.Domain})
	}
	if mentee.Branch != nil {
		out = append(out, user.BranchIs{Branch: *mentee.Branch})
	}
	if mentee.YearOfStudy != nil && *mentee.YearOfStudy > 0 {
		out = append(out, user.YearOfStudyIs{Year: *mentee.YearOfStudy})
	}
	if len(mentee.CompaniesInterested) > 0 {
		out = append(out, user.HasAnyCompany{Companies: slices.Clone(mentee.CompaniesInterested)})
	}
	return out
}

// CandidatePredicate selects mentors worth recommending: role MENTOR, not yet
// accepted by this mentee, and sharing at least one signal. A mentee with no
// signals gets every eligible mentor.
func CandidatePredicate(mentee user.User) user.Predicate {
	p := user.And{
		user.RoleIs{Role: user.RoleMentor},
		user.NoAcceptedRequestWith{MenteeID: mentee.ID},
	}
	if sig := Signals(mentee); len(sig) > 0 {
		p = append(p, user.Or(sig))
	}
	return p
}

// Evaluate reports which signals mentor shares with mentee. Score is the
// number of matched signals.
func Evaluate(mentee, mentor user.User) Result {
	matched := make([]Signal, 0, 4)
	if mentee.Domain != nil && mentor.Domain != nil && *mentee.Domain == *mentor.Domain {
		matched = append(matched, SignalDomain)
	}
	if mentee.Branch != nil && mentor.Branch != nil && *mentee.Branch == *mentor.Branch {
		matched = append(matched, SignalBranch)
	}
	if mentee.YearOfStudy != nil && *mentee.YearOfStudy > 0 &&
		mentor.YearOfStudy != nil && *mentor.YearOfStudy == *mentee.YearOfStudy {
		matched = append(matched, SignalYearOfStudy)
	}
	if intersects(mentee.CompaniesInterested, mentor.Companies) {
		matched = append(matched, SignalCompanies)
	}
	return Result{Score: len(matched), Matched: matched}
}

func intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	for _, s := range a {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}
