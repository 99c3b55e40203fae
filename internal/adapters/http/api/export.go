package api

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/pie/internal/adapters/export"
	"github.com/okian/pie/pkg/metrics"
)

// handleExportLeaks serves GET /export/leaks?format=csv|xlsx as an attachment.
func (s *Server) handleExportLeaks(w http.ResponseWriter, r *http.Request) {
	const op = "api.export_leaks"
	f, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.fail(w, r, NewKind(op, ErrBadRequest, "format must be csv or xlsx"))
		return
	}

	cells, err := s.deps.Leaks(r.Context())
	if err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}

	// Rendered into memory first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := export.WriteLeaks(&buf, f, cells); err != nil {
		s.fail(w, r, Wrap(op, err))
		return
	}
	metrics.RecordExport(string(f))

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Filename(time.Now())+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
