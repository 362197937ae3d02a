package repository

import (
	"context"
	"strconv"
	"strings"

	"mentorlink/internal/database"
	"mentorlink/internal/domain/user"

	"github.com/google/uuid"
)

const userColumns = `u.id, u.name, u.email, u.password_hash, u.image_url, u.role,
	u.year_of_study, u.domain, u.branch, u.companies, u.companies_interested,
	u.created_at, u.updated_at`

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return user.User{}, classify("find user", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users u WHERE lower(u.email) = lower($1)`,
		strings.TrimSpace(email),
	)
	u, err := scanUser(row)
	if err != nil {
		return user.User{}, classify("find user by email", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`,
		strings.TrimSpace(email),
	).Scan(&exists)
	if err != nil {
		return false, classify("check email", err)
	}
	return exists, nil
}

func (r *PostgresUserRepository) Query(ctx context.Context, p user.Predicate, limit int, order user.Order) ([]user.User, error) {
	var args argList
	where, err := compileUserPredicate(p, &args)
	if err != nil {
		return nil, err
	}

	q := `SELECT ` + userColumns + ` FROM users u WHERE ` + where + ` ORDER BY ` + orderClause(order)
	if limit > 0 {
		q += ` LIMIT ` + strconv.Itoa(limit)
	}

	rows, err := r.db.Query(ctx, q, args.args...)
	if err != nil {
		return nil, classify("query users", err)
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, classify("scan user", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("query users", err)
	}
	return out, nil
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if strings.TrimSpace(u.ImageURL) == "" {
		u.ImageURL = user.DefaultImageURL
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO users AS u (id, name, email, password_hash, image_url, role,
			year_of_study, domain, branch, companies, companies_interested)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+userColumns,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.ImageURL,
		string(u.Role),
		u.YearOfStudy,
		enumPtr(u.Domain),
		enumPtr(u.Branch),
		nonNil(u.Companies),
		nonNil(u.CompaniesInterested),
	)
	created, err := scanUser(row)
	if err != nil {
		return user.User{}, classify("create user", err)
	}
	return created, nil
}

func (r *PostgresUserRepository) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE users u SET image_url = $2 WHERE u.id = $1 RETURNING `+userColumns,
		id, imageURL,
	)
	u, err := scanUser(row)
	if err != nil {
		return user.User{}, classify("update image", err)
	}
	return u, nil
}

// userScanner collects the nullable columns of one users row so it can be
// scanned alone or as part of a wider joined row.
type userScanner struct {
	u      user.User
	role   string
	year   *int16
	domain *string
	branch *string
}

func (s *userScanner) dest() []any {
	return []any{
		&s.u.ID,
		&s.u.Name,
		&s.u.Email,
		&s.u.PasswordHash,
		&s.u.ImageURL,
		&s.role,
		&s.year,
		&s.domain,
		&s.branch,
		&s.u.Companies,
		&s.u.CompaniesInterested,
		&s.u.CreatedAt,
		&s.u.UpdatedAt,
	}
}

func (s *userScanner) result() user.User {
	u := s.u
	u.Role = user.Role(s.role)
	if s.year != nil {
		y := int(*s.year)
		u.YearOfStudy = &y
	}
	if s.domain != nil {
		d := user.Domain(*s.domain)
		u.Domain = &d
	}
	if s.branch != nil {
		b := user.Branch(*s.branch)
		u.Branch = &b
	}
	if u.Companies == nil {
		u.Companies = []string{}
	}
	if u.CompaniesInterested == nil {
		u.CompaniesInterested = []string{}
	}
	return u
}

func scanUser(row database.Row) (user.User, error) {
	var s userScanner
	if err := row.Scan(s.dest()...); err != nil {
		return user.User{}, err
	}
	return s.result(), nil
}

func userColumnsAs(alias string) string {
	return strings.ReplaceAll(userColumns, "u.", alias+".")
}

func enumPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ user.Repository = (*PostgresUserRepository)(nil)
