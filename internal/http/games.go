package http

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/gamecsv"
	"github.com/mauv0809/courtside/internal/session"
	"github.com/mauv0809/courtside/internal/settings"
)

func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Library.List())
	}
}

func (s *Server) RefreshGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.Library.Refresh()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) DeleteGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		log.Info("Deleting game", "id", id)
		if err := s.Processor.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ExportCSVHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := gamecsv.Export(&buf, s.Library.List()); err != nil {
			writeError(w, err)
			return
		}
		name := fmt.Sprintf("courtside-%s.csv", time.Now().Format(time.DateOnly))
		writeCSV(w, name, buf.Bytes())
	}
}

func (s *Server) TemplateCSVHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := gamecsv.WriteTemplate(&buf); err != nil {
			writeError(w, err)
			return
		}
		writeCSV(w, "courtside-template.csv", buf.Bytes())
	}
}

// ImportCSVHandler accepts the file as the raw body or as the "file" field
// of a multipart form. With dry_run=true the file is only validated.
func (s *Server) ImportCSVHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		body, err := importBody(r)
		if err != nil {
			badRequest(w, err)
			return
		}
		defer body.Close()

		if isDryRunFromContext(r) {
			records, err := gamecsv.Import(body, time.Now())
			if err != nil {
				writeError(w, err)
				return
			}
			log.Info("[Dry Run] Would have imported games", "count", len(records))
			writeJSON(w, http.StatusOK, importResponse{Imported: len(records), DryRun: true, Games: records})
			return
		}

		records, err := s.Processor.Import(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, importResponse{Imported: len(records), Games: records})
	}
}

func (s *Server) GetSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, settings.Load(s.Settings))
	}
}

func (s *Server) PutSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefs := settings.Load(s.Settings)
		if err := decodeJSON(w, r, &prefs); err != nil {
			badRequest(w, err)
			return
		}
		if err := settings.Save(s.Settings, prefs); err != nil {
			writeError(w, fmt.Errorf("%w: %v", session.ErrPersist, err))
			return
		}
		writeJSON(w, http.StatusOK, settings.Load(s.Settings))
	}
}

func importBody(r *http.Request) (io.ReadCloser, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return r.Body, nil
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("reading uploaded file: %w", err)
	}
	return file, nil
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
