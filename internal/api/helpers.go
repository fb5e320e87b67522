package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bporter/mcattrainer/internal/errors"
	"github.com/bporter/mcattrainer/internal/logger"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("malformed JSON body: " + err.Error())
	}
	return nil
}

// idParam parses the {id} route parameter as an int64.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid id: " + raw)
	}
	return id, nil
}

// queryInt reads an integer query parameter, falling back to def when absent
// or unparsable.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.FromContext(r.Context()).Debug("ignoring bad %s query param: %q", name, raw)
		return def
	}
	return v
}

// queryInt64 reads a required int64 query parameter.
func queryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.NewBadRequestError(name + " query parameter is required")
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid " + name + ": " + raw)
	}
	return v, nil
}

// querySubjects splits a comma-separated subjects parameter; nil means all.
func querySubjects(r *http.Request) []string {
	raw := r.URL.Query().Get("subjects")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	subjects := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			subjects = append(subjects, p)
		}
	}
	if len(subjects) == 0 {
		return nil
	}
	return subjects
}
