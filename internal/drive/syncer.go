package drive

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// SyncOptions controls which Drive folder is synced.
type SyncOptions struct {
	FolderID   string
	FolderPath string
}

// Sink receives a downloaded workbook. Implementations typically parse it
// and persist the resulting session.
type Sink func(ctx context.Context, fileName string, data []byte) error

// Syncer downloads the most recent workbook from a Drive folder and hands
// it to a sink.
type Syncer struct {
	service *Service
	sink    Sink
}

func NewSyncer(s *Service, sink Sink) *Syncer {
	return &Syncer{service: s, sink: sink}
}

// SyncLatest resolves the target folder, downloads its newest workbook and
// passes it to the sink. It returns the name of the workbook that was
// synced, or an error when the folder holds no workbooks.
func (s *Syncer) SyncLatest(ctx context.Context, opts SyncOptions) (string, error) {
	folderID := opts.FolderID
	if opts.FolderPath != "" {
		id, err := s.service.FindFolderByPath(opts.FolderPath)
		if err != nil {
			return "", err
		}
		folderID = id
	}

	files, err := s.service.ListWorkbooks(folderID)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no workbooks found in folder")
	}

	latest := files[0]
	log.Info().
		Str("file", latest.Name).
		Str("modified", latest.ModifiedTime).
		Msg("Downloading workbook from Drive")

	data, err := s.service.DownloadWorkbook(latest.ID)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", latest.Name, err)
	}

	if err := s.sink(ctx, latest.Name, data); err != nil {
		return "", fmt.Errorf("failed to ingest %s: %w", latest.Name, err)
	}

	return latest.Name, nil
}
