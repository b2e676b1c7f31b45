package booking_test

import (
	"fmt"
	"sync"
	"testing"

	"medical-booking-api/internal/booking"
)

func TestRegister(t *testing.T) {
	reg := booking.NewRegistry()

	p, err := reg.Register("  Ana  ", "  Ana@X.com ", "555-123-4567")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("id: got %d", p.ID)
	}
	if p.Name != "Ana" {
		t.Errorf("name not trimmed: %q", p.Name)
	}
	if p.Email != "ana@x.com" {
		t.Errorf("email not normalized: %q", p.Email)
	}
	if p.Phone != "5551234567" {
		t.Errorf("phone not normalized: %q", p.Phone)
	}
	if p.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}
}

func TestRegisterFirstFailureWins(t *testing.T) {
	reg := booking.NewRegistry()

	// name is checked before email, email before phone
	_, err := reg.Register("Ab", "not-an-email", "123")
	if err == nil || err.Error() != "name too short" {
		t.Fatalf("expected name error, got %v", err)
	}
	_, err = reg.Register("Ana", "not-an-email", "123")
	if err == nil || err.Error() != "invalid email" {
		t.Fatalf("expected email error, got %v", err)
	}
	_, err = reg.Register("Ana", "ana@x.com", "123")
	if err == nil || err.Error() != "invalid phone" {
		t.Fatalf("expected phone error, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	reg := booking.NewRegistry()

	if _, err := reg.Register("First User", "dup@x.com", "5551111111"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := reg.Register("Second User", "dup@x.com", "5552222222")
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if kind, ok := booking.KindOf(err); !ok || kind != booking.KindDuplicate {
		t.Errorf("expected KindDuplicate, got %v", err)
	}

	// normalized collision: differs only in case and padding
	_, err = reg.Register("Third User", "  DUP@X.COM ", "5553333333")
	if kind, ok := booking.KindOf(err); !ok || kind != booking.KindDuplicate {
		t.Errorf("expected KindDuplicate for case-folded email, got %v", err)
	}

	if got := len(reg.List()); got != 1 {
		t.Errorf("expected 1 stored patient, got %d", got)
	}
}

func TestListCreationOrder(t *testing.T) {
	reg := booking.NewRegistry()
	for i := 0; i < 5; i++ {
		_, err := reg.Register(fmt.Sprintf("Patient %d", i), fmt.Sprintf("p%d@x.com", i), "5551234567")
		if err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
	}

	got := reg.List()
	if len(got) != 5 {
		t.Fatalf("expected 5 patients, got %d", len(got))
	}
	for i, p := range got {
		if p.ID != int64(i+1) {
			t.Errorf("position %d: id %d", i, p.ID)
		}
	}
}

func TestGetPatient(t *testing.T) {
	reg := booking.NewRegistry()
	p, _ := reg.Register("Ana Lopez", "ana@x.com", "5551234567")

	got, err := reg.Get(p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Email != "ana@x.com" {
		t.Errorf("email: got %q", got.Email)
	}

	_, err = reg.Get(999)
	if kind, ok := booking.KindOf(err); !ok || kind != booking.KindNotFound {
		t.Errorf("expected KindNotFound, got %v", err)
	}
}

func TestConcurrentRegisterSameEmail(t *testing.T) {
	reg := booking.NewRegistry()

	const n = 10
	var wg sync.WaitGroup
	results := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := reg.Register(fmt.Sprintf("Racer %d", i), "race@x.com", "5551234567")
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	successes, duplicates := 0, 0
	for err := range results {
		if err == nil {
			successes++
		} else if kind, ok := booking.KindOf(err); ok && kind == booking.KindDuplicate {
			duplicates++
		} else {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("expected exactly 1 success, got %d", successes)
	}
	if duplicates != n-1 {
		t.Errorf("expected %d duplicates, got %d", n-1, duplicates)
	}
}

func TestRegistryReset(t *testing.T) {
	reg := booking.NewRegistry()
	reg.Register("Ana Lopez", "ana@x.com", "5551234567")
	reg.Reset()

	if got := len(reg.List()); got != 0 {
		t.Fatalf("expected empty registry, got %d", got)
	}
	// ids and emails start over after a reset
	p, err := reg.Register("Ana Lopez", "ana@x.com", "5551234567")
	if err != nil {
		t.Fatalf("register after reset: %v", err)
	}
	if p.ID != 1 {
		t.Errorf("expected id 1 after reset, got %d", p.ID)
	}
}
