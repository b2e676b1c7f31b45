package booking

import (
	"strings"
	"sync"
	"time"

	"medical-booking-api/internal/model"
)

// Registry owns the patient collection. It is append-only: patients are
// never updated or removed, and a normalized email is never handed out
// twice. Check-then-insert runs under the write lock so two concurrent
// registrations cannot both claim the same email.
type Registry struct {
	mu       sync.RWMutex
	nextID   int64
	patients []model.Patient
	emails   map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{emails: make(map[string]struct{})}
}

func (r *Registry) Register(name, email, phone string) (model.Patient, error) {
	if err := ValidateName(name); err != nil {
		return model.Patient{}, err
	}
	if err := ValidateEmail(email); err != nil {
		return model.Patient{}, err
	}
	if err := ValidatePhone(phone); err != nil {
		return model.Patient{}, err
	}

	em := NormalizeEmail(email)
	ph := NormalizePhone(phone)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[em]; taken {
		return model.Patient{}, duplicateErr("email already registered")
	}

	r.nextID++
	p := model.Patient{
		ID:        r.nextID,
		Name:      strings.TrimSpace(name),
		Email:     em,
		Phone:     ph,
		CreatedAt: time.Now().UTC(),
	}
	r.patients = append(r.patients, p)
	r.emails[em] = struct{}{}
	return p, nil
}

// List returns patients in creation order.
func (r *Registry) List() []model.Patient {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Patient, len(r.patients))
	copy(out, r.patients)
	return out
}

func (r *Registry) Get(id int64) (model.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Patient{}, notFoundErr("patient not found")
}

// Reset wipes all patients. Test harness hook only.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID = 0
	r.patients = nil
	r.emails = make(map[string]struct{})
}
