package model

import "time"

const (
	StatusScheduled = "scheduled"
	StatusCancelled = "cancelled"
)

type Patient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

type Doctor struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

type Appointment struct {
	ID          int64      `json:"id"`
	PatientID   int64      `json:"patientId"`
	PatientName string     `json:"patientName"`
	DoctorID    int64      `json:"doctorId"`
	DoctorName  string     `json:"doctorName"`
	DateTime    time.Time  `json:"dateTime"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}
