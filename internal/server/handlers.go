package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/calgrid/calgrid/internal/bucket"
	"github.com/calgrid/calgrid/internal/domain"
	exportical "github.com/calgrid/calgrid/internal/ical"
	"github.com/calgrid/calgrid/internal/navigate"
)

// handleView computes one view payload.
//
// GET /api/view?view=month|week|day|agenda&date=2006-01-02
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	view, anchor, err := s.viewParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	var payload interface{}
	switch view {
	case domain.ViewMonth:
		v, verr := s.svc.MonthView(anchor)
		if verr != nil {
			err = verr
			break
		}
		payload = toMonthViewDTO(v)
	case domain.ViewWeek:
		v, verr := s.svc.WeekView(anchor)
		if verr != nil {
			err = verr
			break
		}
		payload = toWeekViewDTO(v)
	case domain.ViewDay:
		v, verr := s.svc.DayView(anchor)
		if verr != nil {
			err = verr
			break
		}
		payload = toDayViewDTO(v)
	case domain.ViewAgenda:
		v, verr := s.svc.AgendaView(anchor)
		if verr != nil {
			err = verr
			break
		}
		payload = toAgendaViewDTO(v)
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, payload)
}

// handleNavigate steps the anchor date and returns the next title.
//
// GET /api/navigate?view=week&date=2006-01-02&dir=next|prev
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	view, anchor, err := s.viewParams(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	dir := navigate.Forward
	switch r.URL.Query().Get("dir") {
	case "", "next":
	case "prev":
		dir = navigate.Backward
	default:
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unknown direction %q", r.URL.Query().Get("dir")))
		return
	}

	next, err := navigate.Step(anchor, view, dir, s.cfg.AgendaDays)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	title, err := navigate.ViewTitle(next, view, s.cfg.WeekStartDay(), s.cfg.AgendaDays)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.writeJSON(w, http.StatusOK, NavigateDTO{
		Date:  next.Format(bucket.DayKeyLayout),
		Title: toTitleDTO(title),
	})
}

// handleEvents lists the visible snapshot or creates an event.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		events := s.svc.Snapshot()
		out := make([]EventDTO, 0, len(events))
		for _, ev := range events {
			out = append(out, toEventDTO(ev))
		}
		s.writeJSON(w, http.StatusOK, out)

	case http.MethodPost:
		var dto EventDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode event: %w", err))
			return
		}
		ev, err := fromEventDTO(dto)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.svc.PutEvent(ev); err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, toEventDTO(ev))

	default:
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	}
}

// handleEvent updates, deletes, moves or resizes a single event.
//
//	PUT    /api/event/{id}
//	DELETE /api/event/{id}
//	POST   /api/event/{id}/move?days=N&minutes=M
//	POST   /api/event/{id}/resize?days=N&minutes=M
func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/event/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("missing event id"))
		return
	}

	switch {
	case action == "" && r.Method == http.MethodPut:
		var dto EventDTO
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("decode event: %w", err))
			return
		}
		dto.ID = id
		ev, err := fromEventDTO(dto)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.svc.PutEvent(ev); err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		s.writeJSON(w, http.StatusOK, toEventDTO(ev))

	case action == "" && r.Method == http.MethodDelete:
		if err := s.svc.DeleteEvent(id); err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"id": id})

	case action == "move" && r.Method == http.MethodPost:
		days, minutes, err := shiftParams(r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		ev, err := s.svc.MoveEvent(id, days, minutes)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		s.writeJSON(w, http.StatusOK, toEventDTO(*ev))

	case action == "resize" && r.Method == http.MethodPost:
		days, minutes, err := shiftParams(r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err)
			return
		}
		ev, err := s.svc.ResizeEvent(id, days, minutes)
		if err != nil {
			s.writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		s.writeJSON(w, http.StatusOK, toEventDTO(*ev))

	default:
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	}
}

// handleICS serves the visible snapshot as an iCalendar feed.
func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	cal := exportical.Export(s.svc.Snapshot(), s.cfg.Location)
	body, err := exportical.Serialize(cal)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// viewParams parses the view and anchor date shared by the view and
// navigate endpoints. A missing date anchors at today in the display
// zone.
func (s *Server) viewParams(r *http.Request) (domain.View, time.Time, error) {
	q := r.URL.Query()

	viewStr := q.Get("view")
	if viewStr == "" {
		viewStr = string(domain.ViewMonth)
	}
	view, err := domain.ParseView(viewStr)
	if err != nil {
		return "", time.Time{}, err
	}

	dateStr := q.Get("date")
	if dateStr == "" {
		now := time.Now().In(s.cfg.Location)
		return view, now, nil
	}
	anchor, err := time.ParseInLocation(bucket.DayKeyLayout, dateStr, s.cfg.Location)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return view, anchor, nil
}

func shiftParams(r *http.Request) (days, minutes int, err error) {
	q := r.URL.Query()
	if v := q.Get("days"); v != "" {
		days, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid days %q", v)
		}
	}
	if v := q.Get("minutes"); v != "" {
		minutes, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid minutes %q", v)
		}
	}
	return days, minutes, nil
}
