package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListService_MoveSendsOnlyDate(t *testing.T) {
	env := newTestEnv(t)
	l := testutil.NewTestList("2025-03-12", testutil.WithListName("Markt"))
	env.backend.AddLists(l)
	svc := NewListService(env.client, env.cache)

	moved, err := svc.Move(context.Background(), l.ID, "2025-03-14T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", moved.Date)
	assert.Equal(t, "Markt", moved.Name)

	calls := env.backend.CallsTo("PUT", "/lists/"+itoa(l.ID))
	require.Len(t, calls, 1)
	var body map[string]any
	require.NoError(t, json.Unmarshal(calls[0].Body, &body))
	assert.Equal(t, map[string]any{"date": "2025-03-14"}, body)
}

func TestListService_MergeFoldsSourceIntoTarget(t *testing.T) {
	env := newTestEnv(t)
	milk := testutil.NewTestProduct("Milch", "l")
	target := testutil.NewTestList("2025-03-12")
	source := testutil.NewTestList("2025-03-13",
		testutil.WithItems(domain.ListItem{ID: 77, ProductID: milk.ID, Quantity: 1, Unit: "l"}))
	env.backend.AddLists(target, source)
	svc := NewListService(env.client, env.cache)

	require.NoError(t, svc.Merge(context.Background(), target.ID, source.ID))

	calls := env.backend.CallsTo("POST", "/lists/"+itoa(target.ID)+"/merge")
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"sourceListId":`+itoa(source.ID)+`}`, string(calls[0].Body))

	assert.Nil(t, env.backend.ListByID(source.ID))
	merged := env.backend.ListByID(target.ID)
	require.NotNil(t, merged)
	assert.Len(t, merged.ListItems, 1)
}

func TestListService_MergeIntoSelfRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := NewListService(env.client, env.cache)

	err := svc.Merge(context.Background(), 5, 5)
	require.Error(t, err)
	assert.Empty(t, env.backend.Calls())
}

func TestListService_AllFallsBackToSnapshot(t *testing.T) {
	env := newTestEnv(t)
	env.backend.AddLists(testutil.NewTestList("2025-03-12"), testutil.NewTestList("2025-04-01"))
	svc := NewListService(env.client, env.cache)

	data, err := svc.All(context.Background())
	require.NoError(t, err)
	assert.False(t, data.Offline)

	env.backend.FailNext("GET /lists", 1)
	data, err = svc.All(context.Background())
	require.NoError(t, err)
	assert.True(t, data.Offline)
	assert.Len(t, data.Lists, 2)
}

func TestListService_CreateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	svc := NewListService(env.client, env.cache)
	ctx := context.Background()

	l, err := svc.Create(ctx, "2025-03-15", "Wochenende")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", l.Date)
	require.Len(t, env.backend.Lists(), 1)

	require.NoError(t, svc.Delete(ctx, l.ID))
	assert.Empty(t, env.backend.Lists())
}
