package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cezatakip-service/internal/domain/entity"
	"cezatakip-service/internal/domain/repository"
	"cezatakip-service/internal/usecase"
	"cezatakip-service/pkg/logger"
)

// maxUploadBytes caps the uploaded workbook size at 50MB.
const maxUploadBytes = 50 << 20

// Importer is the slice of the import orchestrator the handler consumes.
type Importer interface {
	Import(ctx context.Context, opts usecase.ImportOptions) (*entity.ImportSummary, error)
}

// PenaltyHandler serves the traffic-penalty endpoints.
type PenaltyHandler struct {
	importer    Importer
	repo        repository.PenaltyRepository
	mw          *Middleware
	logger      logger.Logger
	uploadDir   string
	defaultPath string
}

// NewPenaltyHandler creates a new penalty handler.
func NewPenaltyHandler(importer Importer, repo repository.PenaltyRepository, mw *Middleware, log logger.Logger, uploadDir, defaultPath string) *PenaltyHandler {
	return &PenaltyHandler{
		importer:    importer,
		repo:        repo,
		mw:          mw,
		logger:      log,
		uploadDir:   uploadDir,
		defaultPath: defaultPath,
	}
}

// Import handles POST /api/traffic-penalties/import. The workbook comes
// either as the multipart field excelFile or from the configured default
// path. Admin only (enforced by middleware).
func (h *PenaltyHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes+(1<<20))

	opts, status, err := h.stageUpload(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	summary, err := h.importer.Import(r.Context(), opts)
	if err != nil {
		h.logger.Error("Import failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message": "import failed",
			"error":   err.Error(),
		})
		return
	}

	h.mw.LogActivity(r.Context(), "penalty-import",
		fmt.Sprintf("imported=%d updated=%d errors=%d", summary.Imported, summary.Updated, summary.Errors))

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "import completed",
		"imported": summary.Imported,
		"updated":  summary.Updated,
		"errors":   summary.Errors,
		"total":    summary.Total,
	})
}

// stageUpload validates the optional multipart file and stages it into the
// upload directory. Once staged, removal is owned by the importer.
func (h *PenaltyHandler) stageUpload(r *http.Request) (usecase.ImportOptions, int, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return usecase.ImportOptions{}, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err)
	}

	clearExisting, _ := strconv.ParseBool(r.FormValue("clearExisting"))
	opts := usecase.ImportOptions{
		Path:          h.defaultPath,
		ClearExisting: clearExisting,
	}

	file, header, err := r.FormFile("excelFile")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return opts, 0, nil
	}
	if err != nil {
		return usecase.ImportOptions{}, http.StatusBadRequest, fmt.Errorf("invalid upload: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		return usecase.ImportOptions{}, http.StatusBadRequest, errors.New("only .xlsx and .xls files are accepted")
	}
	if header.Size > maxUploadBytes {
		return usecase.ImportOptions{}, http.StatusBadRequest, errors.New("file exceeds the 50MB limit")
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return usecase.ImportOptions{}, http.StatusInternalServerError, fmt.Errorf("staging upload: %w", err)
	}
	tmp, err := os.CreateTemp(h.uploadDir, "import-*"+ext)
	if err != nil {
		return usecase.ImportOptions{}, http.StatusInternalServerError, fmt.Errorf("staging upload: %w", err)
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return usecase.ImportOptions{}, http.StatusInternalServerError, fmt.Errorf("staging upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return usecase.ImportOptions{}, http.StatusInternalServerError, fmt.Errorf("staging upload: %w", err)
	}

	opts.Path = tmp.Name()
	opts.Uploaded = true
	return opts, 0, nil
}

// List handles GET /api/traffic-penalties.
func (h *PenaltyHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.PenaltyFilter{
		DriverName:    q.Get("driver"),
		PassengerName: q.Get("passenger"),
		DateFrom:      q.Get("from"),
		DateTo:        q.Get("to"),
	}
	if v, err := strconv.ParseBool(q.Get("flagged")); err == nil {
		filter.Flagged = &v
	}
	if v, err := strconv.ParseBool(q.Get("taxi")); err == nil {
		filter.Taxi = &v
	}
	filter.Page, _ = strconv.ParseInt(q.Get("page"), 10, 64)
	filter.Limit, _ = strconv.ParseInt(q.Get("limit"), 10, 64)

	records, total, err := h.repo.Find(r.Context(), filter)
	if err != nil {
		h.logger.Error("Penalty list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	if records == nil {
		records = []*entity.PenaltyRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  records,
		"total": total,
	})
}

// Get handles GET /api/traffic-penalties/{id}, id being the penalty number.
func (h *PenaltyHandler) Get(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid penalty number")
		return
	}

	record, err := h.repo.FindByNumber(r.Context(), number)
	if err != nil {
		h.logger.Error("Penalty lookup failed", "number", number, "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "penalty not found")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Stats handles GET /api/traffic-penalties/stats/overview.
func (h *PenaltyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.Stats(r.Context())
	if err != nil {
		h.logger.Error("Stats aggregation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
