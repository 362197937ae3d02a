package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mentorlink/internal/domain"
	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

const minPasswordLength = 8

type RegisterInput struct {
	Name                string
	Email               string
	Password            string
	Role                user.Role
	YearOfStudy         *int
	Domain              *user.Domain
	Branch              *user.Branch
	Companies           []string
	CompaniesInterested []string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	cost  int
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

// NewServiceWithCost lets tests trade hash strength for speed.
func NewServiceWithCost(users user.Repository, cost int) *Service {
	return &Service{users: users, cost: cost}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	u, err := s.buildUser(in)
	if err != nil {
		return user.User{}, err
	}

	exists, err := s.users.ExistsByEmail(ctx, u.Email)
	if err != nil {
		return user.User{}, storeError(err)
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, ErrInternal
	}
	u.PasswordHash = string(hash)

	created, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, domain.ErrConstraintViolation) {
			exists, exErr := s.users.ExistsByEmail(ctx, u.Email)
			if exErr == nil && exists {
				return user.User{}, ErrEmailAlreadyRegistered
			}
		}
		return user.User{}, storeError(err)
	}
	return user.Sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, storeError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}
	return user.Sanitize(u), nil
}

// buildUser validates the signup payload. Company lists are kept only on the
// side that owns them: companies for mentors, interests for mentees.
func (s *Service) buildUser(in RegisterInput) (user.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}
	if !in.Role.Valid() {
		return user.User{}, ErrInvalidInput
	}
	if in.YearOfStudy != nil && (*in.YearOfStudy < 1 || *in.YearOfStudy > 10) {
		return user.User{}, ErrInvalidInput
	}
	if in.Domain != nil && !in.Domain.Valid() {
		return user.User{}, ErrInvalidInput
	}
	if in.Branch != nil && !in.Branch.Valid() {
		return user.User{}, ErrInvalidInput
	}

	u := user.User{
		ID:                  uuid.New(),
		Name:                name,
		Email:               email,
		ImageURL:            user.DefaultImageURL,
		Role:                in.Role,
		YearOfStudy:         in.YearOfStudy,
		Domain:              in.Domain,
		Branch:              in.Branch,
		Companies:           []string{},
		CompaniesInterested: []string{},
	}
	switch in.Role {
	case user.RoleMentor:
		u.Companies = user.NormalizeCompanies(in.Companies)
	case user.RoleMentee:
		u.CompaniesInterested = user.NormalizeCompanies(in.CompaniesInterested)
	}
	return u, nil
}

// storeError keeps the store's cause so an outage still reads as
// domain.ErrUnavailable to callers.
func storeError(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// normalizeEmail only trims: addresses are stored as typed and compared
// case-insensitively by the store.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= minPasswordLength
}
