package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/certlookup/internal/export"
	"github.com/sells-group/certlookup/internal/model"
	"github.com/sells-group/certlookup/internal/present"
	"github.com/sells-group/certlookup/internal/search"
	"github.com/sells-group/certlookup/internal/source"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RecordView is one search hit as returned by /api/records.
type RecordView struct {
	Identifier  string        `json:"identifier"`
	Rows        []present.Row `json:"rows"`
	Details     []present.Row `json:"details"`
	Certificate string        `json:"certificate"`
}

// RecordsResponse is the body of /api/records.
type RecordsResponse struct {
	Query   string       `json:"query"`
	Count   int          `json:"count"`
	Records []RecordView `json:"records"`
}

// StatusResponse is the body of /api/status and /api/source.
type StatusResponse struct {
	Loaded      bool     `json:"loaded"`
	Source      string   `json:"source,omitempty"`
	Version     string   `json:"version,omitempty"`
	Records     int      `json:"records"`
	Candidates  []string `json:"candidates,omitempty"`
	Locale      string   `json:"locale,omitempty"`
	Font        string   `json:"font,omitempty"`
	HeadingFont string   `json:"heading_font,omitempty"`
	Logo        bool     `json:"logo"`
}

// ReloadResponse is the body of /api/reload.
type ReloadResponse struct {
	StatusResponse
	Reloaded bool `json:"reloaded"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	q, ok := queryParam(w, r)
	if !ok {
		return
	}
	set, ok := s.records(w, r)
	if !ok {
		return
	}

	hits := search.Search(set, q)
	// Matching is on the identifier only, so an identifier's records are
	// either all in hits or none are; ordinals within hits equal those in set.
	ordinals := search.Ordinals(hits)
	resp := RecordsResponse{Query: q, Count: hits.Len(), Records: make([]RecordView, 0, hits.Len())}
	for i, rec := range hits.Records() {
		resp.Records = append(resp.Records, RecordView{
			Identifier:  rec.Identifier,
			Rows:        s.deps.Adapter.ViewRows(rec),
			Details:     s.deps.Adapter.DetailRows(rec),
			Certificate: certificateURL(rec.Identifier, ordinals[i]),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCertificate(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(chi.URLParam(r, "identifier"))
	if err != nil || id == "" {
		writeError(w, http.StatusBadRequest, "invalid identifier")
		return
	}
	n := 1
	if raw := r.URL.Query().Get("n"); raw != "" {
		n, err = strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
	}
	set, ok := s.records(w, r)
	if !ok {
		return
	}
	rec, found := search.FindByIdentifier(set, id, n)
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	png, err := s.deps.Engine.Render(s.deps.Adapter.RenderInput(rec))
	if err != nil {
		zap.L().Error("render certificate failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("identifier", id),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	disposition := "inline"
	if r.URL.Query().Get("download") != "" {
		disposition = "attachment"
	}
	name := present.FileName(rec)
	if n > 1 {
		name = fmt.Sprintf("%s-%d.png", strings.TrimSuffix(name, ".png"), n)
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, name))
	w.WriteHeader(http.StatusOK)
	w.Write(png) //nolint:errcheck
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q, ok := queryParam(w, r)
	if !ok {
		return
	}
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		writeError(w, http.StatusBadRequest, "format must be xlsx or csv")
		return
	}
	encoding := strings.ToLower(r.URL.Query().Get("encoding"))
	if encoding == "" {
		encoding = s.opts.CSVEncoding
	}
	switch encoding {
	case "", "utf-8", "utf8", "gbk":
	default:
		writeError(w, http.StatusBadRequest, "encoding must be utf-8 or gbk")
		return
	}
	set, ok := s.records(w, r)
	if !ok {
		return
	}
	hits := search.Search(set, q)

	var buf bytes.Buffer
	var err error
	contentType := xlsxContentType
	if format == "csv" {
		contentType = "text/csv"
		if encoding == "gbk" {
			contentType = "text/csv; charset=gbk"
		}
		err = export.WriteCSV(&buf, hits, encoding)
	} else {
		err = export.WriteXLSX(&buf, hits)
	}
	if err != nil {
		zap.L().Error("export failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("format", format),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "certificates."+format))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.status(s.deps.Catalog.Loaded()))
}

// handleReload reloads the source when its file changed since the last
// load. force=1 reloads unconditionally.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	var (
		reloaded = true
		err      error
	)
	if r.URL.Query().Get("force") != "" {
		_, err = s.deps.Catalog.Reload(r.Context())
	} else {
		reloaded, err = s.deps.Catalog.Refresh(r.Context())
	}
	if err != nil {
		s.sourceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ReloadResponse{
		StatusResponse: s.status(s.deps.Catalog.Loaded()),
		Reloaded:       reloaded,
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.deps.UploadDir == "" || s.deps.Loader == nil {
		writeError(w, http.StatusNotImplemented, "uploads disabled")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if _, err := source.Store(r.Context(), s.deps.Loader, s.deps.UploadDir, header.Filename, file); err != nil {
		zap.L().Warn("upload rejected",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("name", header.Filename),
			zap.Error(err),
		)
		writeError(w, http.StatusUnprocessableEntity, "upload rejected")
		return
	}

	set, err := s.deps.Catalog.Reload(r.Context())
	if err != nil {
		s.sourceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.status(set))
}

// records returns the current record set or writes the error response.
func (s *Server) records(w http.ResponseWriter, r *http.Request) (*model.RecordSet, bool) {
	set, err := s.deps.Catalog.Get(r.Context())
	if err != nil {
		s.sourceError(w, r, err)
		return nil, false
	}
	return set, true
}

func (s *Server) sourceError(w http.ResponseWriter, r *http.Request, err error) {
	if source.IsUnavailable(err) {
		zap.L().Warn("no source available",
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusServiceUnavailable, "no data")
		return
	}
	zap.L().Error("load records failed",
		zap.String("request_id", RequestID(r.Context())),
		zap.Error(err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) status(set *model.RecordSet) StatusResponse {
	st := StatusResponse{
		Loaded:  set != nil,
		Source:  set.Source(),
		Version: set.Version(),
		Records: set.Len(),
	}
	if s.deps.Loader != nil {
		st.Candidates = s.deps.Loader.Candidates()
	}
	if s.deps.Adapter != nil {
		st.Locale = string(s.deps.Adapter.Locale())
	}
	if s.deps.Engine != nil {
		st.Font = s.deps.Engine.FontPath()
		st.HeadingFont = s.deps.Engine.HeadingFontPath()
		st.Logo = s.deps.Engine.HasLogo()
	}
	return st
}

// certificateURL addresses the n-th record carrying id. The first one needs
// no ordinal.
func certificateURL(id string, n int) string {
	u := "/api/records/" + url.PathEscape(id) + "/certificate.png"
	if n > 1 {
		u += "?n=" + strconv.Itoa(n)
	}
	return u
}

func queryParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return "", false
	}
	return q, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
