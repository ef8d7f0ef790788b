package reconcile

import (
	"testing"

	"github.com/alexanderramin/gabelguru/internal/domain"
	"github.com/alexanderramin/gabelguru/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	flour, spelt, butter, eggs domain.Product
	session                    *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		flour:  testutil.NewTestProduct("weizenmehl", "g"),
		spelt:  testutil.NewTestProduct("Dinkelmehl", "g"),
		butter: testutil.NewTestProduct("Butter", "g"),
		eggs:   testutil.NewTestProduct("Eier", "Stück"),
	}
	butter := testutil.NewTestIngredient(f.butter, 250, "g", "Kuchen")
	butter.OnList = &domain.Amount{Quantity: 1, Unit: "Packung"}
	eggs := testutil.NewTestIngredient(f.eggs, 0, "Stück")
	eggs.Needs = nil

	data := domain.PlanningData{Ingredients: []domain.PlanningIngredient{
		testutil.NewTestIngredient(f.flour, 500, "g", "Brot", "Kuchen", "Pizza", "Waffeln", "Zopf"),
		butter,
		eggs,
	}}
	f.session = NewSession(1, data, []string{"g", "kg", "Stück", "Packung"},
		[]domain.Product{f.flour, f.spelt, f.butter, f.eggs}, nil)
	return f
}

func TestRows_SortedByNameCaseInsensitive(t *testing.T) {
	f := newFixture(t)

	rows := f.session.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Butter", "Eier", "weizenmehl"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
	assert.Equal(t, "Brot, Kuchen, Pizza +2", rows[2].Sources)
	assert.Equal(t, "Kuchen", rows[0].Sources)
}

func TestQuickAdd(t *testing.T) {
	f := newFixture(t)
	s := f.session

	s.QuickAddPrimary(f.flour.ID)
	adj, ok := s.Adjustment(f.flour.ID)
	require.True(t, ok)
	assert.Equal(t, Adjustment{Quantity: "500", Unit: "g"}, adj)

	// Unit already on the list wins over the native unit.
	s.QuickAddFlat(f.butter.ID)
	adj, _ = s.Adjustment(f.butter.ID)
	assert.Equal(t, Adjustment{Quantity: "1", Unit: "Packung"}, adj)

	// No computed need falls back to flat.
	s.QuickAddPrimary(f.eggs.ID)
	adj, _ = s.Adjustment(f.eggs.ID)
	assert.Equal(t, Adjustment{Quantity: "1", Unit: "Stück"}, adj)
}

func TestQuickAdd_KeepsNote(t *testing.T) {
	f := newFixture(t)
	f.session.Edit(f.flour.ID, Adjustment{Quantity: "1", Unit: "kg", Note: "Type 550"})
	f.session.QuickAddPrimary(f.flour.ID)

	adj, _ := f.session.Adjustment(f.flour.ID)
	assert.Equal(t, "Type 550", adj.Note)
	assert.Equal(t, "500", adj.Quantity)
}

func TestEdit_BlankClears(t *testing.T) {
	f := newFixture(t)
	f.session.Edit(f.flour.ID, Adjustment{Quantity: "2", Unit: "kg"})
	f.session.Edit(f.flour.ID, Adjustment{Quantity: " ", Unit: ""})

	_, ok := f.session.Adjustment(f.flour.ID)
	assert.False(t, ok)
	assert.Empty(t, f.session.Adjustments)
}

func TestBatch_ExcludesEmptyAndNonPositive(t *testing.T) {
	f := newFixture(t)
	s := f.session
	s.Adjustments[f.flour.ID] = Adjustment{Quantity: "2", Unit: "kg"}
	s.Adjustments[f.butter.ID] = Adjustment{Quantity: "", Unit: ""}
	s.Adjustments[f.eggs.ID] = Adjustment{Quantity: "0", Unit: "Stück", Note: "ignored"}
	s.Adjustments[f.spelt.ID] = Adjustment{Quantity: "-1", Unit: "g"}

	notes, items := s.Batch()
	assert.Empty(t, notes)
	require.Len(t, items, 1)
	assert.Equal(t, domain.BulkItem{ProductID: f.flour.ID, Quantity: 2, Unit: "kg"}, items[0])
}

func TestBatch_DecimalCommaAndNotes(t *testing.T) {
	f := newFixture(t)
	s := f.session
	s.Edit(f.butter.ID, Adjustment{Quantity: "0,5", Unit: "kg", Note: " Kerrygold "})
	s.Edit(f.eggs.ID, Adjustment{Quantity: "abc", Unit: "Stück"})
	s.Edit(f.flour.ID, Adjustment{Quantity: "Inf", Unit: "g"})

	notes, items := s.Batch()
	require.Len(t, items, 1)
	assert.Equal(t, 0.5, items[0].Quantity)
	assert.Equal(t, []domain.ProductNote{{ProductID: f.butter.ID, Note: "Kerrygold"}}, notes)
}

func TestSubstitution_RoundTrip(t *testing.T) {
	f := newFixture(t)
	s := f.session

	s.QuickAddPrimary(f.flour.ID)
	require.NoError(t, s.Substitute(f.flour.ID, f.spelt))

	rows := s.Rows()
	flourRow := rows[2]
	assert.Equal(t, "weizenmehl", flourRow.Name, "original name is kept")
	assert.Equal(t, f.spelt.ID, flourRow.EffectiveProductID())
	require.NotNil(t, flourRow.Adjustment)
	assert.Equal(t, "500", flourRow.Adjustment.Quantity)

	_, items := s.Batch()
	require.Len(t, items, 1)
	assert.Equal(t, f.spelt.ID, items[0].ProductID)

	removed, ok := s.ClearSubstitution(f.flour.ID)
	require.True(t, ok)
	assert.Equal(t, f.spelt.ID, removed.ID)
	assert.Empty(t, s.Substitutions)
	_, has := s.Adjustments[f.spelt.ID]
	assert.False(t, has, "adjustment under the substitute is dropped")
	assert.Equal(t, f.flour.ID, s.Rows()[2].EffectiveProductID())

	_, ok = s.ClearSubstitution(f.flour.ID)
	assert.False(t, ok)
}

func TestSubstitute_Rejections(t *testing.T) {
	f := newFixture(t)
	assert.Error(t, f.session.Substitute(f.flour.ID, f.flour))
	assert.Error(t, f.session.Substitute(f.spelt.ID, f.flour), "spelt is not planned")
}

func TestRestore_UndoesReplacedSubstitution(t *testing.T) {
	f := newFixture(t)
	s := f.session
	require.NoError(t, s.Substitute(f.flour.ID, f.spelt))
	s.Edit(f.flour.ID, Adjustment{Quantity: "2", Unit: "kg"})

	snap := s.Snapshot(f.flour.ID)
	require.NoError(t, s.Substitute(f.flour.ID, f.butter))
	_, moved := s.Adjustments[f.butter.ID]
	require.True(t, moved)

	s.Restore(snap)

	assert.Equal(t, f.spelt.ID, s.Substitutions[f.flour.ID].ID)
	assert.Equal(t, map[int64]Adjustment{f.spelt.ID: {Quantity: "2", Unit: "kg"}}, s.Adjustments)
}

func TestRestore_UndoesFirstSubstitution(t *testing.T) {
	f := newFixture(t)
	s := f.session
	s.QuickAddPrimary(f.flour.ID)

	snap := s.Snapshot(f.flour.ID)
	require.NoError(t, s.Substitute(f.flour.ID, f.spelt))
	s.Restore(snap)

	assert.Empty(t, s.Substitutions)
	adj, ok := s.Adjustment(f.flour.ID)
	require.True(t, ok)
	assert.Equal(t, Adjustment{Quantity: "500", Unit: "g"}, adj)
	assert.Len(t, s.Adjustments, 1)
}

func TestRestore_UndoesClearSubstitution(t *testing.T) {
	f := newFixture(t)
	s := f.session
	require.NoError(t, s.Substitute(f.flour.ID, f.spelt))
	s.QuickAddFlat(f.flour.ID)

	snap := s.Snapshot(f.flour.ID)
	_, ok := s.ClearSubstitution(f.flour.ID)
	require.True(t, ok)
	s.Restore(snap)

	assert.Equal(t, f.spelt.ID, s.Substitutions[f.flour.ID].ID)
	adj, ok := s.Adjustments[f.spelt.ID]
	require.True(t, ok)
	assert.Equal(t, "1", adj.Quantity)
}

func TestNewSession_ResolvesSavedSubstitutions(t *testing.T) {
	flour := testutil.NewTestProduct("Mehl", "g")
	spelt := testutil.NewTestProduct("Dinkel", "g")
	data := domain.PlanningData{Ingredients: []domain.PlanningIngredient{testutil.NewTestIngredient(flour, 1, "kg")}}

	s := NewSession(1, data, nil, []domain.Product{flour, spelt}, []domain.Substitution{
		{ListID: 1, OriginalProductID: flour.ID, SubstituteID: spelt.ID},
		{ListID: 1, OriginalProductID: 999, SubstituteID: 998},
	})
	require.Len(t, s.Substitutions, 1)
	assert.Equal(t, "Dinkel", s.Substitutions[flour.ID].Name)
	assert.Equal(t, "g", s.DefaultUnit(flour.ID))
}

func TestHideAndSwipeDismiss(t *testing.T) {
	f := newFixture(t)
	s := f.session
	s.QuickAddFlat(f.eggs.ID)

	assert.False(t, s.SwipeDismiss(f.eggs.ID, 100))
	assert.Len(t, s.Rows(), 3)
	assert.False(t, s.SwipeDismiss(f.eggs.ID, -150), "right swipe never dismisses")

	assert.True(t, s.SwipeDismiss(f.eggs.ID, 101))
	assert.Len(t, s.Rows(), 2)
	assert.Equal(t, 1, s.HiddenCount())
	_, ok := s.Adjustment(f.eggs.ID)
	assert.False(t, ok)

	s.Hide(f.butter.ID)
	assert.Len(t, s.Rows(), 1)
	s.Unhide()
	assert.Len(t, s.Rows(), 3)
}

func TestSourcesLabel(t *testing.T) {
	assert.Equal(t, "", SourcesLabel(nil))
	assert.Equal(t, "A, B, C", SourcesLabel([]string{"A", "B", "C"}))
	assert.Equal(t, "A, B, C +1", SourcesLabel([]string{"A", "B", "C", "D"}))
}

func TestSearchProductsAndSuggestions(t *testing.T) {
	f := newFixture(t)
	s := f.session
	s.Products[0].Note = "Bio"
	s.Products[2].Note = "Bioladen"
	s.Products[3].Note = "Bio"

	got := s.SearchProducts("MEHL", f.flour.ID, 5)
	require.Len(t, got, 1)
	assert.Equal(t, "Dinkelmehl", got[0].Name)
	assert.Len(t, s.SearchProducts("", 0, 2), 2)

	assert.Equal(t, []string{"Bio", "Bioladen"}, s.NoteSuggestions("bi"))
}

func TestCycleUnit(t *testing.T) {
	f := newFixture(t)
	s := f.session
	assert.Equal(t, "kg", s.CycleUnit("g", 1))
	assert.Equal(t, "Packung", s.CycleUnit("g", -1))
	assert.Equal(t, "g", s.CycleUnit("Liter", 1))
}
