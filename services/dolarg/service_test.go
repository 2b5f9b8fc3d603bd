package dolarg

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"commander-backend/lib/testutil"
	"commander-backend/services/syncstore"
	"commander-backend/services/syncstore/db"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

type fakeBrowser struct {
	page []byte
	err  error
}

func (f fakeBrowser) Document(ctx context.Context, url string) (*goquery.Document, error) {
	if f.err != nil {
		return nil, f.err
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(f.page))
}

func (f fakeBrowser) Binary(ctx context.Context, url string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

const testDocPath = "apis/dolarg"

func newTestService(t *testing.T, browser fakeBrowser) (Service, syncstore.Store) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "dolarg",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)

	store := syncstore.NewStore(res.DB)
	service := NewService(Config{
		DataUrl: "https://dolarg.example.com",
		DocPath: testDocPath,
	}, store, browser)
	return service, store
}

func TestSyncSuccess(t *testing.T) {
	service, store := newTestService(t, fakeBrowser{page: quotePageTest})
	ctx := context.Background()

	err := service.Sync(ctx)
	require.NoError(t, err)

	var record SyncRecord
	err = store.Get(ctx, testDocPath, &record)
	require.NoError(t, err)
	require.Len(t, record.Data, 3)
	require.NotNil(t, record.SyncError)
	require.False(t, *record.SyncError)
	require.Nil(t, record.SyncErrorMsg)
	require.NotNil(t, record.SyncDate)
}

func TestSyncFailureKeepsPriorData(t *testing.T) {
	service, store := newTestService(t, fakeBrowser{page: quotePageTest})
	ctx := context.Background()

	err := service.Sync(ctx)
	require.NoError(t, err)

	failing := NewService(Config{
		DataUrl: "https://dolarg.example.com",
		DocPath: testDocPath,
	}, store, fakeBrowser{err: errors.New("navigation timeout")})

	err = failing.Sync(ctx)
	require.ErrorContains(t, err, "navigation timeout")

	var record SyncRecord
	err = store.Get(ctx, testDocPath, &record)
	require.NoError(t, err)
	// previously synced data survives a failed attempt
	require.Len(t, record.Data, 3)
	require.NotNil(t, record.SyncError)
	require.True(t, *record.SyncError)
	require.NotNil(t, record.SyncErrorMsg)
	require.Contains(t, *record.SyncErrorMsg, "navigation timeout")
	require.NotNil(t, record.SyncDate)
}

func TestSyncMissingConfig(t *testing.T) {
	res, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "dolarg",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)
	store := syncstore.NewStore(res.DB)

	service := NewService(Config{DocPath: testDocPath}, store, fakeBrowser{page: quotePageTest})
	ctx := context.Background()

	err := service.Sync(ctx)
	require.ErrorContains(t, err, "dolarg.data_url")

	// the failed attempt still stamps a status record
	var record SyncRecord
	err = store.Get(ctx, testDocPath, &record)
	require.NoError(t, err)
	require.NotNil(t, record.SyncError)
	require.True(t, *record.SyncError)
}

func TestCheckCooldown(t *testing.T) {
	service, _ := newTestService(t, fakeBrowser{page: quotePageTest})
	ctx := context.Background()

	// no prior attempt, gate is open
	res, err := service.CheckCooldown(ctx, time.Now())
	require.NoError(t, err)
	require.True(t, res.Allowed)

	err = service.Sync(ctx)
	require.NoError(t, err)

	res, err = service.CheckCooldown(ctx, time.Now())
	require.NoError(t, err)
	require.False(t, res.Allowed)
	require.GreaterOrEqual(t, res.RetryAfter, int64(1))

	res, err = service.CheckCooldown(ctx, time.Now().Add(CooldownWindow+time.Second))
	require.NoError(t, err)
	require.True(t, res.Allowed)
}
