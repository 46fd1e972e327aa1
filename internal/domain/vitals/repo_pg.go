package vitals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const vitalsCols = `id, user_id, blood_pressure, heart_rate, blood_sugar, weight, height,
	temperature, oxygen_saturation, notes, alerts, bmi, bmi_category, recorded_at,
	created_at, updated_at`

func scanEntry(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(&r.ID, &r.UserID, &r.BloodPressure, &r.HeartRate, &r.BloodSugar,
		&r.Weight, &r.Height, &r.Temperature, &r.OxygenSaturation, &r.Notes, &r.Alerts,
		&r.BMI, &r.BMICategory, &r.RecordedAt, &r.CreatedAt, &r.UpdatedAt)
	return &r, err
}

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO vitals_entry (id, user_id, blood_pressure, heart_rate, blood_sugar,
			weight, height, temperature, oxygen_saturation, notes, alerts, bmi,
			bmi_category, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		rec.ID, rec.UserID, rec.BloodPressure, rec.HeartRate, rec.BloodSugar,
		rec.Weight, rec.Height, rec.Temperature, rec.OxygenSaturation, rec.Notes,
		rec.Alerts, rec.BMI, rec.BMICategory, rec.RecordedAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, userID, id uuid.UUID) (*Record, error) {
	return scanEntry(r.pool.QueryRow(ctx,
		`SELECT `+vitalsCols+` FROM vitals_entry WHERE id = $1 AND user_id = $2`, id, userID))
}

func (r *repoPG) Update(ctx context.Context, rec *Record) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE vitals_entry SET blood_pressure=$3, heart_rate=$4, blood_sugar=$5,
			weight=$6, height=$7, temperature=$8, oxygen_saturation=$9, notes=$10,
			alerts=$11, bmi=$12, bmi_category=$13, recorded_at=$14, updated_at=NOW()
		WHERE id = $1 AND user_id = $2`,
		rec.ID, rec.UserID, rec.BloodPressure, rec.HeartRate, rec.BloodSugar,
		rec.Weight, rec.Height, rec.Temperature, rec.OxygenSaturation, rec.Notes,
		rec.Alerts, rec.BMI, rec.BMICategory, rec.RecordedAt)
	return err
}

func (r *repoPG) Delete(ctx context.Context, userID, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM vitals_entry WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, since time.Time, limit, offset int) ([]*Record, int, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}
	if !since.IsZero() {
		args = append(args, since)
		where += fmt.Sprintf(` AND recorded_at >= $%d`, len(args))
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vitals_entry `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM vitals_entry %s ORDER BY recorded_at DESC LIMIT $%d OFFSET $%d`,
		vitalsCols, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}

func (r *repoPG) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]*Record, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+vitalsCols+` FROM vitals_entry WHERE user_id = $1 ORDER BY recorded_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
