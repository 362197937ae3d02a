package repository

import (
	"fmt"
	"strconv"
	"strings"

	"mentorlink/internal/domain/user"
)

type argList struct {
	args []any
}

func (a *argList) bind(v any) string {
	a.args = append(a.args, v)
	return "$" + strconv.Itoa(len(a.args))
}

// compileUserPredicate renders p as a boolean SQL expression over the users
// table aliased as u. Values are always bound, never inlined.
func compileUserPredicate(p user.Predicate, a *argList) (string, error) {
	switch p := p.(type) {
	case nil:
		return "TRUE", nil
	case user.And:
		return compileJoin(p, " AND ", "TRUE", a)
	case user.Or:
		return compileJoin(p, " OR ", "FALSE", a)
	case user.RoleIs:
		return "u.role = " + a.bind(string(p.Role)), nil
	case user.NameContains:
		return "u.name ILIKE " + a.bind("%"+escapeLike(p.Substring)+"%") + ` ESCAPE '\'`, nil
	case user.DomainIs:
		return "u.domain = " + a.bind(string(p.Domain)), nil
	case user.BranchIs:
		return "u.branch = " + a.bind(string(p.Branch)), nil
	case user.YearOfStudyIs:
		return "u.year_of_study = " + a.bind(p.Year), nil
	case user.HasCompany:
		return a.bind(p.Company) + " = ANY(u.companies)", nil
	case user.HasAnyCompany:
		if len(p.Companies) == 0 {
			return "FALSE", nil
		}
		return "u.companies && " + a.bind(p.Companies) + "::text[]", nil
	case user.NoAcceptedRequestWith:
		return `NOT EXISTS (
			SELECT 1 FROM follow_requests fr
			WHERE fr.mentor_id = u.id AND fr.mentee_id = ` + a.bind(p.MenteeID) + ` AND fr.status = 'ACCEPTED'
		)`, nil
	default:
		return "", fmt.Errorf("unsupported predicate %T", p)
	}
}

func compileJoin(children []user.Predicate, sep, empty string, a *argList) (string, error) {
	if len(children) == 0 {
		return empty, nil
	}
	parts := make([]string, 0, len(children))
	for _, c := range children {
		s, err := compileUserPredicate(c, a)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func orderClause(o user.Order) string {
	if o == user.OrderOldestFirst {
		return "u.created_at ASC, u.id ASC"
	}
	return "u.created_at DESC, u.id DESC"
}
