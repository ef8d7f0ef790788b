package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(e CallEvent) {
	o.mu.Lock()
	o.events = append(o.events, e)
	o.mu.Unlock()
}

func newTestClient(t *testing.T, h http.Handler, obs Observer) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{BaseURL: srv.URL + "/api", Timeout: 2 * time.Second}, StaticToken("tok-123"), obs)
	require.NoError(t, err)
	t.Cleanup(c.CloseIdleConnections)
	return c
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "ftp://example.com"}, nil, nil)
	assert.Error(t, err)
}

func TestMenus_SendsLocalRangeAndBearer(t *testing.T) {
	var gotQuery url.Values
	var gotAuth, gotReqID string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/menus", r.URL.Path)
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-ID")
		_, _ = io.WriteString(w, `[{"id":1,"date":"2025-03-10","meal_type":"dinner","RecipeId":4,"is_eating_out":false}]`)
	}), nil)

	r := calendar.WeekRange(time.Date(2025, time.March, 12, 23, 30, 0, 0, time.Local))
	menus, err := c.Menus(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", gotQuery.Get("start"))
	assert.Equal(t, "2025-03-16", gotQuery.Get("end"))
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotReqID)
	require.Len(t, menus, 1)
	assert.Equal(t, domain.MealDinner, menus[0].MealType)
	assert.Equal(t, int64(4), menus[0].RecipeRef())
}

func TestDo_MapsStatusToSentinels(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrServer},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			obs := &recordingObserver{}
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, `{"error":"nope"}`)
			}), obs)

			_, err := c.Lists(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.status, se.Status)
			assert.Equal(t, "nope", se.Message)

			require.Len(t, obs.events, 1)
			assert.Equal(t, tt.status, obs.events[0].Status)
			assert.NotEmpty(t, obs.events[0].ErrorCode)
		})
	}
}

func TestDo_BadRequestHasNoSentinel(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "plain text failure")
	}), nil)

	err := c.DeleteMenu(context.Background(), 3)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "plain text failure", se.Message)
	assert.NotErrorIs(t, err, ErrServer)
}

func TestDo_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: base}, nil, nil)
	require.NoError(t, err)
	_, err = c.Products(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil, nil)
	require.NoError(t, err)
	_, err = c.Recipes(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestBulkCreateItems_Body(t *testing.T) {
	var body struct {
		Items []domain.BulkItem `json:"items"`
	}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/lists/9/bulk-items", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
	}), nil)

	err := c.BulkCreateItems(context.Background(), 9, []domain.BulkItem{{ProductID: 2, Quantity: 1.5, Unit: "kg"}})
	require.NoError(t, err)
	require.Len(t, body.Items, 1)
	assert.Equal(t, int64(2), body.Items[0].ProductID)
	assert.Equal(t, "kg", body.Items[0].Unit)
}

func TestMergeList_Path(t *testing.T) {
	var path string
	var body map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
	}), nil)

	require.NoError(t, c.MergeList(context.Background(), 5, 8))
	assert.Equal(t, "/api/lists/5/merge", path)
	assert.EqualValues(t, 8, body["sourceListId"])
}

func TestSpeakURL_CarriesToken(t *testing.T) {
	c, err := New(Config{BaseURL: "https://gabelguru.example/api"}, StaticToken("abc"), nil)
	require.NoError(t, err)

	u, err := url.Parse(c.SpeakURL("Wasser kochen"))
	require.NoError(t, err)
	assert.Equal(t, "/api/ai/speak", u.Path)
	assert.Equal(t, "Wasser kochen", u.Query().Get("text"))
	assert.Equal(t, "abc", u.Query().Get("token"))
}

func TestClient_NoGoroutineLeak(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `["g","kg","Stück"]`)
	}))
	c, err := New(Config{BaseURL: srv.URL}, nil, nil)
	require.NoError(t, err)

	units, err := c.Units(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"g", "kg", "Stück"}, units)

	c.CloseIdleConnections()
	srv.Close()
}
