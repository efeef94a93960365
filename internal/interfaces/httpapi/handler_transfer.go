package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dominofed/federation-backend/internal/domain/result"
	"github.com/dominofed/federation-backend/internal/usecase"
)

const (
	// maxImportSize bounds multipart uploads; federation files are small.
	maxImportSize = 20 << 20

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (h *Handler) readImportFile(ctx context.Context, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		return nil, fmt.Errorf("%w: invalid multipart payload: %v", usecase.ErrInvalidInput, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("%w: file form field is required", usecase.ErrInvalidInput)
	}
	defer file.Close()

	if name := strings.ToLower(header.Filename); !strings.HasSuffix(name, ".xlsx") {
		return nil, fmt.Errorf("%w: only .xlsx files are accepted", usecase.ErrInvalidInput)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: read upload: %v", usecase.ErrInvalidInput, err)
	}
	if !isXLSXPayload(data) {
		return nil, fmt.Errorf("%w: file is not a valid xlsx workbook", usecase.ErrInvalidInput)
	}
	return data, nil
}

// isXLSXPayload checks the zip local-file-header magic; xlsx workbooks are
// zip archives, so a renamed csv or html error page is caught before parsing.
func isXLSXPayload(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == "PK\x03\x04"
}

type rejectedImport struct {
	Message   string          `json:"message"`
	RowErrors []rowErrorGroup `json:"row_errors"`
}

type rowErrorGroup struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// groupRowErrors folds per-cell errors into one entry per spreadsheet row,
// keeping first-seen row order.
func groupRowErrors(errs []usecase.RowError) []rowErrorGroup {
	var groups []rowErrorGroup
	index := make(map[int]int)
	for _, e := range errs {
		msg := e.Message
		if e.Column != "" {
			msg = e.Column + ": " + msg
		}
		if i, ok := index[e.Row]; ok {
			groups[i].Errors = append(groups[i].Errors, msg)
			continue
		}
		index[e.Row] = len(groups)
		groups = append(groups, rowErrorGroup{Row: e.Row, Errors: []string{msg}})
	}
	return groups
}

func (h *Handler) runImport(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	importFn func(context.Context, []byte) (usecase.ImportSummary, error),
) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	data, err := h.readImportFile(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := importFn(ctx, data)
	if err != nil {
		// Row-level validation failures still carry every offending cell
		// so the client can point at the sheet.
		if len(summary.Errors) > 0 {
			h.logger.WarnContext(ctx, "import rejected", "rows_with_errors", len(summary.Errors))
			mapped := mapError(ctx, err)
			writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
				APIVersion: googleAPIVersion,
				Data:       rejectedImport{Message: err.Error(), RowErrors: groupRowErrors(summary.Errors)},
				Error: &googleErrorBody{
					Code:    mapped.HTTPStatus,
					Message: err.Error(),
					Status:  mapped.Status,
					Errors: []googleErrorItem{
						{Domain: errorDomain, Reason: mapped.Reason, Message: err.Error()},
					},
				},
			})
			return
		}
		h.logger.WarnContext(ctx, "import failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "import applied",
		"created", summary.Created,
		"updated", summary.Updated,
		"unchanged", summary.Unchanged,
		"skipped_duplicates", summary.SkippedDuplicates,
	)
	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) ImportClubs(w http.ResponseWriter, r *http.Request) {
	h.runImport(w, r, "httpapi.Handler.ImportClubs", h.importService.ImportClubs)
}

func (h *Handler) ImportPlayers(w http.ResponseWriter, r *http.Request) {
	h.runImport(w, r, "httpapi.Handler.ImportPlayers", h.importService.ImportPlayers)
}

func (h *Handler) ImportTournaments(w http.ResponseWriter, r *http.Request) {
	h.runImport(w, r, "httpapi.Handler.ImportTournaments", h.importService.ImportTournaments)
}

func (h *Handler) ImportResults(w http.ResponseWriter, r *http.Request) {
	h.runImport(w, r, "httpapi.Handler.ImportResults", h.importService.ImportResults)
}

func writeSpreadsheet(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func exportFilename(prefix string) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().UTC().Format("20060102"))
}

func (h *Handler) ExportClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportClubs")
	defer span.End()

	data, err := h.exportService.ExportClubs(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "export clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSpreadsheet(w, exportFilename("clubs"), data)
}

func (h *Handler) ExportPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportPlayers")
	defer span.End()

	data, err := h.exportService.ExportPlayers(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "export players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSpreadsheet(w, exportFilename("jugadores"), data)
}

func (h *Handler) ExportTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportTournaments")
	defer span.End()

	data, err := h.exportService.ExportTournaments(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "export campeonatos failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSpreadsheet(w, exportFilename("campeonatos"), data)
}

func (h *Handler) ExportResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportResults")
	defer span.End()

	filter := result.ListFilter{
		IDFedJugador: strings.TrimSpace(r.URL.Query().Get("idfed")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("tipo")); raw != "" {
		tipoID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tipoID <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: tipo must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		filter.TipoCampeonatoID = &tipoID
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("desde")); raw != "" {
		desde, err := parseRequestDate("desde", raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		filter.FechaDesde = &desde
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("hasta")); raw != "" {
		hasta, err := parseRequestDate("hasta", raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		filter.FechaHasta = &hasta
	}

	data, err := h.exportService.ExportResults(ctx, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "export results failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSpreadsheet(w, exportFilename("resultados"), data)
}
