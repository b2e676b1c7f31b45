package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"medical-booking-api/internal/booking"
	"medical-booking-api/internal/model"
)

func (s *Server) listDoctors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.directory.List())
}

type registerPatientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (s *Server) registerPatient(w http.ResponseWriter, r *http.Request) {
	var req registerPatientRequest
	if err := decode(r, &req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Phone == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "all fields are required",
			"fields": map[string]bool{
				"name":  req.Name == "",
				"email": req.Email == "",
				"phone": req.Phone == "",
			},
		})
		return
	}

	p, err := s.registry.Register(req.Name, req.Email, req.Phone)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.mirrorPatient(r, p)
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) listPatients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.List())
}

type bookAppointmentRequest struct {
	PatientID int64  `json:"patientId"`
	DoctorID  int64  `json:"doctorId"`
	DateTime  string `json:"dateTime"`
	Reason    string `json:"reason"`
}

func (s *Server) bookAppointment(w http.ResponseWriter, r *http.Request) {
	var req bookAppointmentRequest
	if err := decode(r, &req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var when time.Time
	if req.DateTime != "" {
		var err error
		when, err = time.Parse(time.RFC3339, req.DateTime)
		if err != nil {
			writeErrorMsg(w, http.StatusBadRequest, "invalid or past date/time")
			return
		}
	}

	appt, err := s.scheduler.Book(booking.BookRequest{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		DateTime:  when,
		Reason:    req.Reason,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.mirrorAppointment(r, appt)
	writeJSON(w, http.StatusCreated, appt)
}

func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := booking.Filter{Status: q.Get("status")}

	for name, dst := range map[string]*int64{
		"patientId": &f.PatientID,
		"doctorId":  &f.DoctorID,
	} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeErrorMsg(w, http.StatusBadRequest, "invalid "+name)
			return
		}
		*dst = id
	}

	writeJSON(w, http.StatusOK, s.scheduler.List(f))
}

func (s *Server) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeErrorMsg(w, http.StatusNotFound, "appointment not found")
		return
	}

	appt, cerr := s.scheduler.Cancel(id)
	if cerr != nil {
		// cancelling twice reports 400, unlike a booking conflict
		if kind, ok := booking.KindOf(cerr); ok && kind == booking.KindConflict {
			writeErrorMsg(w, http.StatusBadRequest, cerr.Error())
			return
		}
		s.writeError(w, cerr)
		return
	}
	s.mirrorCancel(r, appt)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "appointment cancelled",
		"appointment": appt,
	})
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	s.scheduler.Reset()
	s.registry.Reset()
	if s.archive != nil {
		if err := s.archive.Reset(r.Context()); err != nil {
			s.log.Error().Err(err).Msg("archive reset")
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "data reset"})
}

// Archive mirroring is best effort: the engine has already committed,
// and a write failure must not turn a success into an error.

func (s *Server) mirrorPatient(r *http.Request, p model.Patient) {
	if s.archive == nil {
		return
	}
	if err := s.archive.SavePatient(r.Context(), p); err != nil {
		s.log.Error().Err(err).Int64("patient_id", p.ID).Msg("archive patient")
	}
}

func (s *Server) mirrorAppointment(r *http.Request, a model.Appointment) {
	if s.archive == nil {
		return
	}
	if err := s.archive.SaveAppointment(r.Context(), a); err != nil {
		s.log.Error().Err(err).Int64("appointment_id", a.ID).Msg("archive appointment")
	}
}

func (s *Server) mirrorCancel(r *http.Request, a model.Appointment) {
	if s.archive == nil {
		return
	}
	if err := s.archive.MarkCancelled(r.Context(), a); err != nil {
		s.log.Error().Err(err).Int64("appointment_id", a.ID).Msg("archive cancel")
	}
}
