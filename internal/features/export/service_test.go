package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reportdesk/internal/config"
	"reportdesk/internal/features/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeHistoryRepo struct {
	entries []ExportHistory
}

func (f *fakeHistoryRepo) Create(ctx context.Context, entry *ExportHistory) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeHistoryRepo) List(ctx context.Context, limit int64) ([]ExportHistory, error) {
	return f.entries, nil
}

type failingDelivery struct {
	err error
}

func (d *failingDelivery) Deliver(ctx context.Context, content []byte, filename string, mimeType string) error {
	return d.err
}

func newTestService(repo HistoryRepository) ExportService {
	cfg := &config.Config{ExportBaseName: "reports"}
	return NewExportService(repo, cfg, zap.NewNop())
}

func testRecords(n int) []report.ReportRecord {
	records := make([]report.ReportRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, report.ReportRecord{
			ID:     primitive.NewObjectID(),
			Title:  fmt.Sprintf("Report %d", i),
			Status: "published",
			Author: "tester",
		})
	}
	return records
}

func TestExportReportsSuccess(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newTestService(repo)
	sink := &BufferDelivery{}

	filename, err := svc.ExportReports(context.Background(), testRecords(3), sink, "user-1")
	require.NoError(t, err)

	expected := fmt.Sprintf("reports-%s.csv", time.Now().Format("2006-01-02"))
	assert.Equal(t, expected, filename)
	assert.Equal(t, filename, sink.Filename)
	assert.Equal(t, "text/csv", sink.MimeType)

	lines := strings.Split(string(sink.Content), "\n")
	require.Len(t, lines, 4) // header plus one line per record
	assert.Equal(t, strings.Join(ReportCSVHeaders, ","), lines[0])

	require.Len(t, repo.entries, 1)
	assert.Equal(t, ExportStatusSuccess, repo.entries[0].Status)
	assert.Equal(t, 3, repo.entries[0].RowCount)
	assert.Equal(t, "user-1", repo.entries[0].RequestedBy)
}

func TestExportReportsNoDataNeverTouchesDelivery(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newTestService(repo)
	sink := &BufferDelivery{}

	_, err := svc.ExportReports(context.Background(), nil, sink, "user-1")
	require.ErrorIs(t, err, ErrNoData)
	assert.Empty(t, sink.Filename)
	assert.Nil(t, sink.Content)

	_, err = svc.ExportReports(context.Background(), []report.ReportRecord{}, sink, "user-1")
	require.ErrorIs(t, err, ErrNoData)
	assert.Empty(t, sink.Filename)
}

func TestExportReportsDeliveryFailureIsWrapped(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newTestService(repo)
	cause := errors.New("bucket unavailable")

	_, err := svc.ExportReports(context.Background(), testRecords(1), &failingDelivery{err: cause}, "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to deliver export")

	require.Len(t, repo.entries, 1)
	assert.Equal(t, ExportStatusFailed, repo.entries[0].Status)
	assert.Contains(t, repo.entries[0].Error, "bucket unavailable")
}

func TestExportReportsRejectsConcurrentRuns(t *testing.T) {
	repo := &fakeHistoryRepo{}
	svc := newTestService(repo)

	started := make(chan struct{})
	release := make(chan struct{})
	slow := &blockingDelivery{started: started, release: release}

	go func() {
		_, _ = svc.ExportReports(context.Background(), testRecords(1), slow, "user-1")
	}()

	<-started
	_, err := svc.ExportReports(context.Background(), testRecords(1), &BufferDelivery{}, "user-2")
	assert.ErrorIs(t, err, ErrExportInProgress)
	close(release)
}

type blockingDelivery struct {
	started chan struct{}
	release chan struct{}
}

func (d *blockingDelivery) Deliver(ctx context.Context, content []byte, filename string, mimeType string) error {
	close(d.started)
	<-d.release
	return nil
}

func TestDirDeliveryWritesFile(t *testing.T) {
	dir := t.TempDir()
	d := &DirDelivery{Dir: dir}

	err := d.Deliver(context.Background(), []byte("a,b\n1,2"), "out.csv", "text/csv")
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2", string(content))
}
