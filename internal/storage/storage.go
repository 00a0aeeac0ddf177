package storage

import "context"

// ObjectInfo represents metadata for a stored workbook object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// WorkbookArchive captures the minimal object-storage operations the
// dashboard needs: keep the original uploaded workbook binaries so a
// session can be re-ingested later, and list what has been kept.
// Archiving is best-effort; a failed archive never fails an upload.
type WorkbookArchive interface {
	Archive(ctx context.Context, fileName string, data []byte) error
	List(ctx context.Context) ([]ObjectInfo, error)
}

// NewNoopArchive returns an archive that drops everything, used when the
// archive is disabled.
func NewNoopArchive() WorkbookArchive {
	return noopArchive{}
}

type noopArchive struct{}

func (noopArchive) Archive(ctx context.Context, fileName string, data []byte) error {
	return nil
}

func (noopArchive) List(ctx context.Context) ([]ObjectInfo, error) {
	return nil, nil
}
