package ingest

import (
	"time"

	"github.com/kmonkmol38/DashNew1/internal/domain"
)

// ParseRequest carries one uploaded workbook to the background parser.
type ParseRequest struct {
	FileName string
	Data     []byte
}

// ParseResponse is the single message a parse worker produces: either a
// fully built session or an error, never both, exactly once.
type ParseResponse struct {
	Session *domain.Session
	Err     error
}

// ParseAsync parses a workbook off the caller's goroutine. The returned
// channel is buffered and receives exactly one response before closing, so
// an abandoned parse can be dropped by discarding the channel: the worker
// finishes, sends into the buffer, and exits without anyone blocking.
// No state is written anywhere until the caller adopts the success payload.
func ParseAsync(req ParseRequest) <-chan ParseResponse {
	ch := make(chan ParseResponse, 1)
	go func() {
		defer close(ch)

		result, err := ParseWorkbook(req.Data)
		if err != nil {
			ch <- ParseResponse{Err: err}
			return
		}

		ch <- ParseResponse{Session: &domain.Session{
			Sheets:     result.Sheets,
			FileName:   req.FileName,
			UploadedAt: time.Now().UTC(),
			Warnings:   result.Warnings,
		}}
	}()
	return ch
}
