package booking_test

import (
	"testing"

	"medical-booking-api/internal/booking"
)

func TestDirectory(t *testing.T) {
	dir := booking.NewDirectory(booking.DefaultDoctors()...)

	docs := dir.List()
	if len(docs) != 3 {
		t.Fatalf("expected 3 doctors, got %d", len(docs))
	}
	for i, d := range docs {
		if d.ID != int64(i+1) {
			t.Errorf("seed order broken at %d: id %d", i, d.ID)
		}
	}

	doc, err := dir.Get(2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if doc.Specialty != "Pediatrics" {
		t.Errorf("specialty: got %s", doc.Specialty)
	}

	_, err = dir.Get(999)
	if kind, ok := booking.KindOf(err); !ok || kind != booking.KindNotFound {
		t.Errorf("expected KindNotFound, got %v", err)
	}
}
