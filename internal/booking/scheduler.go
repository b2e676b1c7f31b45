package booking

import (
	"strings"
	"sync"
	"time"

	"medical-booking-api/internal/model"
)

// MinSeparation is the smallest gap allowed between two scheduled
// appointments for the same doctor. The bound is exclusive: exactly one
// hour apart is a valid back-to-back pair.
const MinSeparation = time.Hour

const defaultReason = "General consultation"

type BookRequest struct {
	PatientID int64
	DoctorID  int64
	DateTime  time.Time
	Reason    string
}

// Filter narrows List results. Zero values impose no constraint;
// supplied fields must all match.
type Filter struct {
	Status    string
	PatientID int64
	DoctorID  int64
}

// Scheduler owns the appointment collection and enforces the temporal
// conflict rule and the scheduled->cancelled lifecycle. Book's
// check-then-insert runs entirely under the write lock, so two
// concurrent bookings for overlapping slots can never both commit.
type Scheduler struct {
	registry  *Registry
	directory *Directory

	mu     sync.RWMutex
	nextID int64
	appts  []model.Appointment
}

func NewScheduler(reg *Registry, dir *Directory) *Scheduler {
	return &Scheduler{registry: reg, directory: dir}
}

func (s *Scheduler) Book(req BookRequest) (model.Appointment, error) {
	if req.PatientID == 0 || req.DoctorID == 0 || req.DateTime.IsZero() {
		return model.Appointment{}, validationErr("required fields missing")
	}

	// Patients and doctors are never deleted, so resolving outside the
	// appointment lock is safe.
	patient, err := s.registry.Get(req.PatientID)
	if err != nil {
		return model.Appointment{}, err
	}
	doctor, err := s.directory.Get(req.DoctorID)
	if err != nil {
		return model.Appointment{}, err
	}

	when := req.DateTime.UTC()
	if err := ValidateDateTime(when, time.Now()); err != nil {
		return model.Appointment{}, err
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = defaultReason
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appts {
		a := &s.appts[i]
		if a.DoctorID != req.DoctorID || a.Status != model.StatusScheduled {
			continue
		}
		if a.DateTime.Sub(when).Abs() < MinSeparation {
			return model.Appointment{}, conflictErr("slot already taken")
		}
	}

	s.nextID++
	appt := model.Appointment{
		ID:          s.nextID,
		PatientID:   patient.ID,
		PatientName: patient.Name,
		DoctorID:    doctor.ID,
		DoctorName:  doctor.Name,
		DateTime:    when,
		Reason:      reason,
		Status:      model.StatusScheduled,
		CreatedAt:   time.Now().UTC(),
	}
	s.appts = append(s.appts, appt)
	return appt, nil
}

// List returns appointments matching every supplied filter field, in
// storage order.
func (s *Scheduler) List(f Filter) []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Appointment, 0, len(s.appts))
	for _, a := range s.appts {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.PatientID != 0 && a.PatientID != f.PatientID {
			continue
		}
		if f.DoctorID != 0 && a.DoctorID != f.DoctorID {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *Scheduler) Get(id int64) (model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.appts {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Appointment{}, notFoundErr("appointment not found")
}

// Cancel moves a scheduled appointment to its terminal state. Cancelling
// twice is a business error, not a crash.
func (s *Scheduler) Cancel(id int64) (model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appts {
		a := &s.appts[i]
		if a.ID != id {
			continue
		}
		if a.Status == model.StatusCancelled {
			return model.Appointment{}, conflictErr("already cancelled")
		}
		now := time.Now().UTC()
		a.Status = model.StatusCancelled
		a.CancelledAt = &now
		return *a, nil
	}
	return model.Appointment{}, notFoundErr("appointment not found")
}

// Reset wipes all appointments. Test harness hook only.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = 0
	s.appts = nil
}
