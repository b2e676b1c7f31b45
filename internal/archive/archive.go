// Package archive mirrors committed engine records into Postgres. It is
// plain CRUD: no validation, no conflict rules. The in-memory engine
// stays the source of truth and never reads back from here.
package archive

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"medical-booking-api/internal/model"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) SavePatient(ctx context.Context, p model.Patient) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO patients (id, name, email, phone, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.Name, p.Email, p.Phone, p.CreatedAt,
	)
	return err
}

func (s *Store) SaveAppointment(ctx context.Context, a model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments
		   (id, patient_id, patient_name, doctor_id, doctor_name,
		    date_time, reason, status, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.PatientID, a.PatientName, a.DoctorID, a.DoctorName,
		a.DateTime, a.Reason, a.Status, a.CreatedAt,
	)
	return err
}

func (s *Store) MarkCancelled(ctx context.Context, a model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status=$1, cancelled_at=$2 WHERE id=$3`,
		a.Status, a.CancelledAt, a.ID,
	)
	return err
}

func (s *Store) Reset(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE appointments, patients`)
	return err
}
