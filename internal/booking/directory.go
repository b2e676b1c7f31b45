package booking

import "medical-booking-api/internal/model"

// Directory is the read-only catalog of bookable doctors. It is seeded
// once at startup and never mutated, so reads need no locking.
type Directory struct {
	doctors []model.Doctor
	byID    map[int64]model.Doctor
}

func NewDirectory(seed ...model.Doctor) *Directory {
	d := &Directory{
		doctors: make([]model.Doctor, len(seed)),
		byID:    make(map[int64]model.Doctor, len(seed)),
	}
	copy(d.doctors, seed)
	for _, doc := range d.doctors {
		d.byID[doc.ID] = doc
	}
	return d
}

// DefaultDoctors is the stock seed used by the server.
func DefaultDoctors() []model.Doctor {
	return []model.Doctor{
		{ID: 1, Name: "Dr. Garcia", Specialty: "General Medicine"},
		{ID: 2, Name: "Dr. Martinez", Specialty: "Pediatrics"},
		{ID: 3, Name: "Dr. Lopez", Specialty: "Cardiology"},
	}
}

// List returns doctors in seed order.
func (d *Directory) List() []model.Doctor {
	out := make([]model.Doctor, len(d.doctors))
	copy(out, d.doctors)
	return out
}

func (d *Directory) Get(id int64) (model.Doctor, error) {
	doc, ok := d.byID[id]
	if !ok {
		return model.Doctor{}, notFoundErr("doctor not found")
	}
	return doc, nil
}
