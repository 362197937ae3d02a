package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleMentor Role = "MENTOR"
	RoleMentee Role = "MENTEE"
)

func (r Role) Valid() bool {
	return r == RoleMentor || r == RoleMentee
}

type Domain string

const (
	DomainSoftware   Domain = "SOFTWARE"
	DomainManagement Domain = "MANAGEMENT"
	DomainMarketing  Domain = "MARKETING"
	DomainAnalyst    Domain = "ANALYST"
	DomainOther      Domain = "OTHER"
)

func (d Domain) Valid() bool {
	switch d {
	case DomainSoftware, DomainManagement, DomainMarketing, DomainAnalyst, DomainOther:
		return true
	}
	return false
}

type Branch string

const (
	BranchCSE   Branch = "CSE"
	BranchECE   Branch = "ECE"
	BranchICE   Branch = "ICE"
	BranchMME   Branch = "MME"
	BranchEEE   Branch = "EEE"
	BranchOther Branch = "OTHER"
)

func (b Branch) Valid() bool {
	switch b {
	case BranchCSE, BranchECE, BranchICE, BranchMME, BranchEEE, BranchOther:
		return true
	}
	return false
}

const DefaultImageURL = "/images/placeholder-avatar.svg"

// User is a mentor or a mentee. Companies is only meaningful for mentors and
// CompaniesInterested only for mentees.
type User struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	PasswordHash        string    `json:"-"`
	ImageURL            string    `json:"image_url"`
	Role                Role      `json:"role"`
	YearOfStudy         *int      `json:"year_of_study,omitempty"`
	Domain              *Domain   `json:"domain,omitempty"`
	Branch              *Branch   `json:"branch,omitempty"`
	Companies           []string  `json:"companies"`
	CompaniesInterested []string  `json:"companies_interested"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (u User) IsMentor() bool { return u.Role == RoleMentor }
func (u User) IsMentee() bool { return u.Role == RoleMentee }

// NormalizeCompanies trims, drops blanks and removes duplicates while keeping
// the first spelling seen.
func NormalizeCompanies(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Sanitize strips the password hash before a user leaves the service.
func Sanitize(u User) User {
	u.PasswordHash = ""
	return u
}
