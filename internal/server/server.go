// Package server maps the booking engine's operations onto the HTTP
// surface. It owns no business rules: requests are decoded into explicit
// structs, handed to the engine, and engine error kinds are translated
// to status codes.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"medical-booking-api/internal/archive"
	"medical-booking-api/internal/booking"
)

type Server struct {
	registry  *booking.Registry
	directory *booking.Directory
	scheduler *booking.Scheduler
	archive   *archive.Store // nil when persistence is disabled
	log       zerolog.Logger
}

func New(reg *booking.Registry, dir *booking.Directory, sched *booking.Scheduler, arch *archive.Store, log zerolog.Logger) *Server {
	return &Server{
		registry:  reg,
		directory: dir,
		scheduler: sched,
		archive:   arch,
		log:       log,
	}
}

func RegisterRoutes(r chi.Router, s *Server) {
	r.Get("/doctors", s.listDoctors)
	r.Post("/patients", s.registerPatient)
	r.Get("/patients", s.listPatients)
	r.Post("/appointments", s.bookAppointment)
	r.Get("/appointments", s.listAppointments)
	r.Delete("/appointments/{id}", s.cancelAppointment)
	r.Post("/reset", s.reset)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeError translates an engine error kind into a status code.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var be *booking.Error
	if !errors.As(err, &be) {
		s.log.Error().Err(err).Msg("unexpected error")
		writeErrorMsg(w, http.StatusInternalServerError, "internal error")
		return
	}
	status := http.StatusBadRequest
	switch be.Kind {
	case booking.KindNotFound:
		status = http.StatusNotFound
	case booking.KindConflict:
		status = http.StatusConflict
	}
	writeErrorMsg(w, status, be.Message)
}

// decode rejects bodies whose shape does not match the operation's
// input struct.
func decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
