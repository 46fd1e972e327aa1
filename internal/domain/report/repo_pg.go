package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const reportCols = `id, user_id, original_name, report_type, test_date, lab_name,
	doctor_name, notes, processed, processed_at, insight, created_at, updated_at`

func scanReport(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.UserID, &r.OriginalName, &r.ReportType, &r.TestDate, &r.LabName,
		&r.DoctorName, &r.Notes, &r.Processed, &r.ProcessedAt, &r.Insight, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO report (id, user_id, original_name, report_type, test_date,
			lab_name, doctor_name, notes, processed)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, rec.UserID, rec.OriginalName, rec.ReportType, rec.TestDate,
		rec.LabName, rec.DoctorName, rec.Notes, rec.Processed)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, userID, id uuid.UUID) (*Record, error) {
	return scanReport(r.pool.QueryRow(ctx,
		`SELECT `+reportCols+` FROM report WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *repoPG) Update(ctx context.Context, rec *Record) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE report SET original_name=$3, report_type=$4, test_date=$5, lab_name=$6,
			doctor_name=$7, notes=$8, processed=$9, processed_at=$10, insight=$11,
			updated_at=NOW()
		WHERE id = $1 AND user_id = $2`,
		rec.ID, rec.UserID, rec.OriginalName, rec.ReportType, rec.TestDate, rec.LabName,
		rec.DoctorName, rec.Notes, rec.Processed, rec.ProcessedAt, rec.Insight)
	return err
}

func (r *repoPG) Delete(ctx context.Context, userID, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM report WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, f Filter, limit, offset int) ([]*Record, int, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}

	if f.Category != "" {
		args = append(args, f.Category)
		where += fmt.Sprintf(` AND report_type = $%d`, len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (original_name ILIKE $%d OR lab_name ILIKE $%d OR doctor_name ILIKE $%d)`, n, n, n)
	}
	if f.ProcessedOnly {
		where += ` AND processed AND insight IS NOT NULL`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM report `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM report %s ORDER BY test_date DESC LIMIT $%d OFFSET $%d`,
		reportCols, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

func (r *repoPG) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]*Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reportCols+` FROM report WHERE user_id = $1 ORDER BY test_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
