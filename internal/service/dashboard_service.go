package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kmonkmol38/DashNew1/internal/domain"
	"github.com/kmonkmol38/DashNew1/internal/ingest"
	"github.com/kmonkmol38/DashNew1/internal/report"
	"github.com/kmonkmol38/DashNew1/internal/session"
	"github.com/kmonkmol38/DashNew1/internal/storage"
)

// DashboardService owns the live session and its durable mirror. Ingestion
// failures leave the prior session untouched; store and archive failures
// degrade to warnings because the in-memory session stays fully functional.
type DashboardService struct {
	controller *report.Controller
	store      session.Store
	archive    storage.WorkbookArchive
}

func NewDashboardService(store session.Store, archive storage.WorkbookArchive) *DashboardService {
	if archive == nil {
		archive = storage.NewNoopArchive()
	}
	return &DashboardService{
		controller: report.NewController(),
		store:      store,
		archive:    archive,
	}
}

// Restore loads a previously persisted session, if any. Called once at
// startup; a store failure here only means starting empty.
func (s *DashboardService) Restore(ctx context.Context) {
	sess, ok, err := s.store.Get(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to restore session from store")
		return
	}
	if !ok {
		return
	}
	s.controller.AdoptSession(sess)
	log.Info().
		Str("file", sess.FileName).
		Time("uploaded_at", sess.UploadedAt).
		Msg("session restored from store")
}

// Upload parses a workbook off the request goroutine and, only on full
// success, adopts it as the new session. The parse is abandoned when the
// caller's context ends; the late worker message is simply never read.
func (s *DashboardService) Upload(ctx context.Context, fileName string, data []byte) (domain.SessionInfo, error) {
	respCh := ingest.ParseAsync(ingest.ParseRequest{FileName: fileName, Data: data})

	select {
	case <-ctx.Done():
		return domain.SessionInfo{}, ctx.Err()
	case resp := <-respCh:
		if resp.Err != nil {
			return domain.SessionInfo{}, fmt.Errorf("failed to parse workbook %s: %w", fileName, resp.Err)
		}

		sess := resp.Session
		s.controller.AdoptSession(sess)

		if err := s.store.Set(ctx, sess); err != nil {
			log.Warn().Err(err).Msg("failed to persist session; it will not survive a restart")
			sess.Warnings = append(sess.Warnings,
				"session could not be persisted and will not survive a restart")
		}

		if err := s.archive.Archive(ctx, fileName, data); err != nil {
			log.Warn().Err(err).Str("file", fileName).Msg("failed to archive workbook")
		}

		return sess.Info(), nil
	}
}

// Archives lists the workbook binaries kept by the archive.
func (s *DashboardService) Archives(ctx context.Context) ([]storage.ObjectInfo, error) {
	return s.archive.List(ctx)
}

// Info returns the current session summary, ok=false before first upload.
func (s *DashboardService) Info() (domain.SessionInfo, bool) {
	sess := s.controller.Session()
	if sess == nil {
		return domain.SessionInfo{}, false
	}
	return sess.Info(), true
}

// Reset drops the in-memory session and clears the durable mirror.
func (s *DashboardService) Reset(ctx context.Context) error {
	s.controller.Clear()
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear stored session: %w", err)
	}
	return nil
}

// HasSession reports whether a workbook has been adopted.
func (s *DashboardService) HasSession() bool {
	return s.controller.Session() != nil
}

// SetShared pushes the shared month/year/business-unit filter into every
// view.
func (s *DashboardService) SetShared(sf domain.SharedFilter) {
	s.controller.SetShared(sf)
}

// Shared returns the current shared filter.
func (s *DashboardService) Shared() domain.SharedFilter {
	return s.controller.Shared()
}

// SetViewFilter updates one dimension of one view.
func (s *DashboardService) SetViewFilter(kind domain.SheetKind, d domain.Dimension, value string) {
	s.controller.SetViewFilter(kind, d, value)
}

// SetViewFilterMulti replaces a multi-select dimension of one view.
func (s *DashboardService) SetViewFilterMulti(kind domain.SheetKind, d domain.Dimension, values []string) {
	s.controller.SetViewFilterMulti(kind, d, values)
}

// View recomputes and returns one sheet view model.
func (s *DashboardService) View(kind domain.SheetKind) domain.ViewModel {
	return s.controller.View(kind)
}

// VehicleCards returns the internal-fleet printable cards.
func (s *DashboardService) VehicleCards() []domain.VehicleCard {
	return s.controller.VehicleCards()
}

// EmployeeCards returns the driver/operator printable cards.
func (s *DashboardService) EmployeeCards() []domain.EmployeeCard {
	return s.controller.EmployeeCards()
}
