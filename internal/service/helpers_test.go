package service

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/gabelguru/internal/api"
	"github.com/alexanderramin/gabelguru/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type testEnv struct {
	backend *testutil.Backend
	client  *api.Client
	db      *sql.DB
	cache   *Cache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	backend := testutil.NewBackend(t)
	client, err := api.New(api.Config{BaseURL: backend.URL(), Timeout: 2 * time.Second}, api.StaticToken("tok"), nil)
	require.NoError(t, err)
	t.Cleanup(client.CloseIdleConnections)

	database := testutil.NewTestDB(t)
	return &testEnv{backend: backend, client: client, db: database, cache: NewCache(database)}
}

// recordingObserver keeps every event for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.events)
	return o.events[len(o.events)-1]
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
