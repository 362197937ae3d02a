package seeder

import (
	"context"
	"errors"
	"fmt"

	"mentorlink/internal/database"
	"mentorlink/internal/domain/user"
	"mentorlink/internal/repository"
	ucauth "mentorlink/internal/usecase/auth"
)

// UsersSeeder registers a small demo population through the normal signup
// path, so passwords are hashed and profile rules apply. Existing emails are
// left untouched.
type UsersSeeder struct {
	Password string
}

func (UsersSeeder) Name() string { return "users" }

func (s UsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users", "id", "name", "email", "password_hash", "role", "companies", "companies_interested"); err != nil {
		return err
	}
	if s.Password == "" {
		return fmt.Errorf("empty seed password")
	}

	svc := ucauth.NewService(repository.NewPostgresUserRepository(db))
	for _, in := range demoUsers() {
		in.Password = s.Password
		if _, err := svc.Register(ctx, in); err != nil {
			if errors.Is(err, ucauth.ErrEmailAlreadyRegistered) {
				continue
			}
			return fmt.Errorf("register %s: %w", in.Email, err)
		}
	}
	return nil
}

func demoUsers() []ucauth.RegisterInput {
	year := func(v int) *int { return &v }
	dom := func(v user.Domain) *user.Domain { return &v }
	br := func(v user.Branch) *user.Branch { return &v }

	return []ucauth.RegisterInput{
		{Name: "Asha Rao", Email: "asha.rao@mentorlink.dev", Role: user.RoleMentor, YearOfStudy: year(4), Domain: dom(user.DomainSoftware), Branch: br(user.BranchCSE), Companies: []string{"Google", "Stripe"}},
		{Name: "Vikram Nair", Email: "vikram.nair@mentorlink.dev", Role: user.RoleMentor, YearOfStudy: year(4), Domain: dom(user.DomainAnalyst), Branch: br(user.BranchECE), Companies: []string{"Goldman Sachs"}},
		{Name: "Meera Iyer", Email: "meera.iyer@mentorlink.dev", Role: user.RoleMentor, YearOfStudy: year(3), Domain: dom(user.DomainManagement), Branch: br(user.BranchMME), Companies: []string{"McKinsey", "Bain"}},
		{Name: "Karan Shah", Email: "karan.shah@mentorlink.dev", Role: user.RoleMentor, YearOfStudy: year(4), Domain: dom(user.DomainMarketing), Branch: br(user.BranchEEE), Companies: []string{"Unilever"}},
		{Name: "Riya Sen", Email: "riya.sen@mentorlink.dev", Role: user.RoleMentee, YearOfStudy: year(2), Domain: dom(user.DomainSoftware), Branch: br(user.BranchCSE), CompaniesInterested: []string{"Google"}},
		{Name: "Arjun Das", Email: "arjun.das@mentorlink.dev", Role: user.RoleMentee, YearOfStudy: year(1), Domain: dom(user.DomainAnalyst), Branch: br(user.BranchICE), CompaniesInterested: []string{"Goldman Sachs", "Stripe"}},
		{Name: "Neha Pillai", Email: "neha.pillai@mentorlink.dev", Role: user.RoleMentee, YearOfStudy: year(3), Domain: dom(user.DomainManagement), Branch: br(user.BranchOther)},
	}
}
