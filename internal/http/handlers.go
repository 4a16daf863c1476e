package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/settings"
	"github.com/mauv0809/courtside/internal/shotchart"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		resp := healthResponse{Status: "ok", Remote: s.Library.Remote()}
		if s.Counters != nil {
			counters, err := s.Counters.GetAll()
			if err != nil {
				log.Warn("Failed to read lifetime counters", "error", err)
			}
			resp.Counters = counters
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) GameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Session.View())
	}
}

func (s *Server) DispatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var action game.Action
		if err := decodeJSON(w, r, &action); err != nil {
			badRequest(w, err)
			return
		}
		res, err := s.Session.Dispatch(action)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, actionResponse{
			Result:        res.Kind,
			Changed:       res.Changed,
			NeedsLocation: res.Request,
			Game:          s.Session.View(),
		})
	}
}

func (s *Server) UndoHandler() http.HandlerFunc {
	return s.sessionOp(func(*http.Request) error { return s.Session.Undo() })
}

func (s *Server) ResetHandler() http.HandlerFunc {
	return s.sessionOp(func(*http.Request) error {
		log.Info("Resetting game in progress")
		return s.Session.Reset()
	})
}

func (s *Server) CloseDialogHandler() http.HandlerFunc {
	return s.sessionOp(func(*http.Request) error { return s.Session.CloseDialog() })
}

func (s *Server) DetailsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var d game.Details
		if err := decodeJSON(w, r, &d); err != nil {
			badRequest(w, err)
			return
		}
		s.respondView(w, s.Session.SetDetails(d))
	}
}

func (s *Server) ShotTrackingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req toggleRequest
		if err := decodeJSON(w, r, &req); err != nil {
			badRequest(w, err)
			return
		}
		s.respondView(w, s.Session.SetShotTracking(req.Enabled))
	}
}

func (s *Server) TimerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req timerRequest
		if err := decodeJSON(w, r, &req); err != nil {
			badRequest(w, err)
			return
		}
		var err error
		switch req.Op {
		case "enable":
			err = s.Session.EnableTimer()
		case "disable":
			err = s.Session.DisableTimer()
		case "toggle":
			err = s.Session.ToggleTimer()
		default:
			badRequest(w, fmt.Errorf("unknown timer op %q", req.Op))
			return
		}
		s.respondView(w, err)
	}
}

func (s *Server) PeriodLengthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req lengthRequest
		if err := decodeJSON(w, r, &req); err != nil {
			badRequest(w, err)
			return
		}
		if req.Minutes <= 0 || req.Minutes > 60 {
			badRequest(w, fmt.Errorf("period length must be between 1 and 60 minutes"))
			return
		}
		s.respondView(w, s.Session.SetPeriodLength(req.Minutes))
	}
}

func (s *Server) OpenDialogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dialogRequest
		if err := decodeJSON(w, r, &req); err != nil {
			badRequest(w, err)
			return
		}
		s.respondView(w, s.Session.OpenDialog(req.Dialog))
	}
}

func (s *Server) SubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := s.Processor.Submit(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, submitResponse{Record: rec, Game: s.Session.View()})
	}
}

// ShotChartHandler draws the live game's shots, optionally for one period.
func (s *Server) ShotChartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := chartOptions(settings.Load(s.Settings))
		if p := r.URL.Query().Get("period"); p != "" {
			period, err := strconv.Atoi(p)
			if err != nil || period < 0 {
				badRequest(w, errors.New("period must be a non-negative number"))
				return
			}
			opts.Period = period
		}
		w.Header().Set("Content-Type", "image/png")
		if err := shotchart.Render(w, s.Session.View().Stats.Shots, opts); err != nil {
			log.Error("Failed to render shot chart", "error", err)
		}
	}
}

func (s *Server) sessionOp(fn func(r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.respondView(w, fn(r))
	}
}

// respondView writes the session after a mutation. A persistence error is
// reported even though the in-memory change stands.
func (s *Server) respondView(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.Session.View())
}

// chartOptions colors the court lines with the team's primary color.
func chartOptions(prefs settings.Settings) shotchart.Options {
	var opts shotchart.Options
	if c, err := shotchart.ParseHex(prefs.PrimaryColor); err == nil {
		opts.Lines = c
	}
	return opts
}
