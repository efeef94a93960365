package httpapi

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/dominofed/federation-backend/internal/usecase"
)

const templateFileName = "plantilla_club.xlsx"

// TemplateStore keeps the club spreadsheet template on disk. It is a plain
// file passthrough: the last uploaded template wins.
type TemplateStore struct {
	dir string
	mu  sync.RWMutex
}

func NewTemplateStore(dir string) *TemplateStore {
	return &TemplateStore{dir: dir}
}

func (s *TemplateStore) path() string {
	return filepath.Join(s.dir, templateFileName)
}

func (s *TemplateStore) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create template dir: %w", err)
	}

	// Write to a sibling temp file and rename so readers never see a
	// half-written template.
	tmp, err := os.CreateTemp(s.dir, templateFileName+".*")
	if err != nil {
		return fmt.Errorf("create temp template: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write template: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close template: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace template: %w", err)
	}
	return nil
}

func (s *TemplateStore) Load() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: no template uploaded", usecase.ErrNotFound)
		}
		return nil, fmt.Errorf("read template: %w", err)
	}
	return data, nil
}

func (h *Handler) UploadClubTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadClubTemplate")
	defer span.End()

	data, err := h.readImportFile(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.templateStore.Save(data); err != nil {
		h.logger.ErrorContext(ctx, "save club template failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "stored"})
}

func (h *Handler) DownloadClubTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DownloadClubTemplate")
	defer span.End()

	data, err := h.templateStore.Load()
	if err != nil {
		h.logger.WarnContext(ctx, "load club template failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSpreadsheet(w, templateFileName, data)
}
