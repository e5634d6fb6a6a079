// Package export packages a selection snapshot into a downloadable zip
// archive. Assets are fetched concurrently with a small fixed worker pool;
// a failed fetch is logged and skipped, never aborting the whole batch.
package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"
	"go.uber.org/zap"

	"fluentdeck/internal/catalog"
	"fluentdeck/internal/domain"
	"fluentdeck/internal/eventbus"
)

// DefaultWorkers is the fetch concurrency for a batch
const DefaultWorkers = 5

// URLResolver maps an item to its fetchable asset URL
type URLResolver interface {
	AssetURL(item domain.Item) (string, error)
}

// Result summarizes a finished batch export
type Result struct {
	TaskID   string
	Path     string
	Archived int
	Skipped  int
}

// Service handles batch export operations
type Service struct {
	resolver URLResolver
	client   *http.Client
	workers  int
	bus      eventbus.EventBus
	logger   *zap.SugaredLogger
}

// NewService creates a new export service
func NewService(resolver URLResolver, bus eventbus.EventBus, logger *zap.SugaredLogger, workers int) *Service {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Service{
		resolver: resolver,
		client:   &http.Client{Timeout: 60 * time.Second},
		workers:  workers,
		bus:      bus,
		logger:   logger,
	}
}

// fetched carries one downloaded asset to the archive writer
type fetched struct {
	name     string
	identity string
	data     []byte
	err      error
}

// Export fetches every exportable item in the list and writes them into a
// zip archive at destPath. Apps have no assets and are skipped up front.
// Returns an error only when nothing could be exported at all or the
// archive itself cannot be written.
func (s *Service) Export(ctx context.Context, items []domain.Item, destPath string) (*Result, error) {
	var exportable []domain.Item
	for _, item := range items {
		if item.Kind.Class() == domain.ClassMedia {
			exportable = append(exportable, item)
		}
	}
	if len(exportable) == 0 {
		return nil, errors.New("nothing to export: selection has no emoji or icons")
	}

	taskID := generateTaskID()
	if s.bus != nil {
		s.bus.Publish(eventbus.ExportStartedEvent{TaskID: taskID, Total: len(exportable)})
	}

	out, err := os.Create(destPath)
	if err != nil {
		return nil, errors.Wrap(err, "create archive")
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	jobs := make(chan domain.Item)
	results := make(chan fetched)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				results <- s.fetchOne(ctx, item)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, item := range exportable {
			select {
			case jobs <- item:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// The zip writer is not safe for concurrent use, so a single collector
	// drains the pool and writes entries sequentially.
	res := &Result{TaskID: taskID, Path: destPath}
	seen := make(map[string]int)
	for f := range results {
		if f.err != nil {
			s.logger.Warnw("asset fetch failed, skipping", "item", f.identity, "error", f.err)
			res.Skipped++
		} else if err := writeEntry(zw, uniqueName(seen, f.name), f.data); err != nil {
			s.logger.Warnw("archive write failed, skipping", "item", f.identity, "error", err)
			res.Skipped++
		} else {
			res.Archived++
		}

		if s.bus != nil {
			s.bus.Publish(eventbus.ExportProgressEvent{
				TaskID:   taskID,
				Done:     res.Archived,
				Failed:   res.Skipped,
				Total:    len(exportable),
				Identity: f.identity,
			})
		}
	}

	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(err, "finalize archive")
	}

	if res.Archived == 0 {
		_ = os.Remove(destPath)
		err := errors.New("export failed: no assets could be fetched")
		s.finish(res, err)
		return nil, err
	}

	s.finish(res, nil)
	return res, nil
}

// fetchOne resolves and downloads a single asset
func (s *Service) fetchOne(ctx context.Context, item domain.Item) fetched {
	f := fetched{
		name:     catalog.ArchiveName(item),
		identity: item.Identity(),
	}

	url, err := s.resolver.AssetURL(item)
	if err != nil {
		f.err = err
		return f
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		f.err = err
		return f
	}

	resp, err := s.client.Do(req)
	if err != nil {
		f.err = err
		return f
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.err = errors.Newf("unexpected status %d fetching %s", resp.StatusCode, url)
		return f
	}

	f.data, f.err = io.ReadAll(resp.Body)
	return f
}

// finish publishes the terminal export event
func (s *Service) finish(res *Result, err error) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(eventbus.ExportFinishedEvent{
		TaskID:   res.TaskID,
		Archived: res.Archived,
		Skipped:  res.Skipped,
		Path:     res.Path,
		Err:      err,
	})
}

// writeEntry adds one file to the archive
func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// uniqueName disambiguates duplicate archive entry names
func uniqueName(seen map[string]int, name string) string {
	n := seen[name]
	seen[name] = n + 1
	if n == 0 {
		return name
	}
	return fmt.Sprintf("%d_%s", n, name)
}

// generateTaskID generates a unique export task ID
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf("export-%d", time.Now().UnixNano())
	}
	return "export-" + id.String()
}
