package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mentorlink/internal/database"
	"mentorlink/internal/domain"
	"mentorlink/internal/domain/follow"

	"github.com/google/uuid"
)

const followColumns = `fr.mentor_id, fr.mentee_id, fr.status, fr.created_at, fr.updated_at`

type PostgresFollowRequestRepository struct {
	db database.DB
}

func NewPostgresFollowRequestRepository(db database.DB) *PostgresFollowRequestRepository {
	return &PostgresFollowRequestRepository{db: db}
}

// Upsert relies on the (mentor_id, mentee_id) primary key so concurrent
// sends for the same pair converge on one row. updated_at only moves when
// the status actually changes.
func (r *PostgresFollowRequestRepository) Upsert(ctx context.Context, mentorID, menteeID uuid.UUID, status follow.Status) (follow.Request, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO follow_requests AS fr (mentor_id, mentee_id, status)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (mentor_id, mentee_id) DO UPDATE
		 SET status = EXCLUDED.status,
		     updated_at = CASE WHEN fr.status = EXCLUDED.status THEN fr.updated_at ELSE now() END
		 RETURNING `+followColumns,
		mentorID, menteeID, string(status),
	)
	req, err := scanRequest(row)
	if err != nil {
		return follow.Request{}, classify("upsert follow request", err)
	}
	return req, nil
}

func (r *PostgresFollowRequestRepository) UpdateStatus(ctx context.Context, mentorID, menteeID uuid.UUID, status follow.Status, onlyFrom ...follow.Status) (follow.Request, error) {
	var from []string
	if len(onlyFrom) > 0 {
		from = make([]string, 0, len(onlyFrom))
		for _, s := range onlyFrom {
			from = append(from, string(s))
		}
	}

	row := r.db.QueryRow(ctx,
		`UPDATE follow_requests fr
		 SET status = $3, updated_at = now()
		 WHERE fr.mentor_id = $1 AND fr.mentee_id = $2
		   AND ($4::text[] IS NULL OR fr.status = ANY($4::text[]))
		 RETURNING `+followColumns,
		mentorID, menteeID, string(status), from,
	)
	req, err := scanRequest(row)
	if err == nil {
		return req, nil
	}

	err = classify("update follow request", err)
	if !errors.Is(err, domain.ErrNotFound) {
		return follow.Request{}, err
	}

	// Nothing updated: either there is no row or its status was not eligible.
	current, ferr := r.Find(ctx, mentorID, menteeID)
	if ferr != nil {
		return follow.Request{}, ferr
	}
	return follow.Request{}, fmt.Errorf("%w: request is %s", domain.ErrInvalidOperation, current.Status)
}

func (r *PostgresFollowRequestRepository) Find(ctx context.Context, mentorID, menteeID uuid.UUID) (follow.Request, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+followColumns+` FROM follow_requests fr WHERE fr.mentor_id = $1 AND fr.mentee_id = $2`,
		mentorID, menteeID,
	)
	req, err := scanRequest(row)
	if err != nil {
		return follow.Request{}, classify("find follow request", err)
	}
	return req, nil
}

func (r *PostgresFollowRequestRepository) List(ctx context.Context, f follow.Filter) ([]follow.Request, error) {
	var args argList
	cols := followColumns
	from := `follow_requests fr`
	if f.WithMentor {
		cols += `, ` + userColumnsAs("m")
		from += ` JOIN users m ON m.id = fr.mentor_id`
	}
	if f.WithMentee {
		cols += `, ` + userColumnsAs("e")
		from += ` JOIN users e ON e.id = fr.mentee_id`
	}

	where := make([]string, 0, 3)
	if f.MentorID != nil {
		where = append(where, "fr.mentor_id = "+args.bind(*f.MentorID))
	}
	if f.MenteeID != nil {
		where = append(where, "fr.mentee_id = "+args.bind(*f.MenteeID))
	}
	if f.Status != nil {
		where = append(where, "fr.status = "+args.bind(string(*f.Status)))
	}

	q := `SELECT ` + cols + ` FROM ` + from
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY ` + followOrderClause(f.Order)
	if f.Limit > 0 {
		q += ` LIMIT ` + strconv.Itoa(f.Limit)
	}

	rows, err := r.db.Query(ctx, q, args.args...)
	if err != nil {
		return nil, classify("list follow requests", err)
	}
	defer rows.Close()

	out := make([]follow.Request, 0)
	for rows.Next() {
		var (
			req    follow.Request
			status string
			mentor userScanner
			mentee userScanner
		)
		dest := []any{&req.MentorID, &req.MenteeID, &status, &req.CreatedAt, &req.UpdatedAt}
		if f.WithMentor {
			dest = append(dest, mentor.dest()...)
		}
		if f.WithMentee {
			dest = append(dest, mentee.dest()...)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, classify("scan follow request", err)
		}
		req.Status = follow.Status(status)
		if f.WithMentor {
			m := mentor.result()
			req.Mentor = &m
		}
		if f.WithMentee {
			e := mentee.result()
			req.Mentee = &e
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list follow requests", err)
	}
	return out, nil
}

func followOrderClause(o follow.Order) string {
	if o == follow.OrderUpdatedDesc {
		return "fr.updated_at DESC, fr.mentor_id DESC, fr.mentee_id DESC"
	}
	return "fr.created_at DESC, fr.mentor_id DESC, fr.mentee_id DESC"
}

func scanRequest(row database.Row) (follow.Request, error) {
	var (
		req    follow.Request
		status string
	)
	if err := row.Scan(&req.MentorID, &req.MenteeID, &status, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return follow.Request{}, err
	}
	req.Status = follow.Status(status)
	return req, nil
}

var _ follow.Repository = (*PostgresFollowRequestRepository)(nil)
