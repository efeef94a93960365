package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dominofed/federation-backend/internal/platform/logging"
	"github.com/dominofed/federation-backend/internal/usecase"
)

type Handler struct {
	clubService       *usecase.ClubService
	playerService     *usecase.PlayerService
	tourTypeService   *usecase.TourTypeService
	tournamentService *usecase.TournamentService
	resultService     *usecase.ResultService
	importService     *usecase.ImportService
	exportService     *usecase.ExportService
	templateStore     *TemplateStore
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	clubService *usecase.ClubService,
	playerService *usecase.PlayerService,
	tourTypeService *usecase.TourTypeService,
	tournamentService *usecase.TournamentService,
	resultService *usecase.ResultService,
	importService *usecase.ImportService,
	exportService *usecase.ExportService,
	templateStore *TemplateStore,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		clubService:       clubService,
		playerService:     playerService,
		tourTypeService:   tourTypeService,
		tournamentService: tournamentService,
		resultService:     resultService,
		importService:     importService,
		exportService:     exportService,
		templateStore:     templateStore,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// pagedList is the data shape of every paginated collection endpoint.
type pagedList struct {
	Items  any `json:"items"`
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// listWindow reads offset/limit/sort query parameters. Zero limit means the
// service default applies.
type listWindow struct {
	Offset int
	Limit  int
	Sort   string
}

func parseListWindow(r *http.Request) (listWindow, error) {
	window := listWindow{Sort: strings.TrimSpace(r.URL.Query().Get("sort"))}

	if raw := strings.TrimSpace(r.URL.Query().Get("offset")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return listWindow{}, fmt.Errorf("%w: offset must be a non-negative integer", usecase.ErrInvalidInput)
		}
		window.Offset = v
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return listWindow{}, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
		}
		window.Limit = v
	}

	return window, nil
}
