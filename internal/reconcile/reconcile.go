// Package reconcile is the bulk planning state: aggregated ingredient needs
// for a list's date range, the user's pending adjustments and substitutions,
// and the save batch derived from them.
package reconcile

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexanderramin/gabelguru/internal/domain"
)

const (
	// DismissThreshold is the leftward swipe in px that hides a row.
	DismissThreshold = 100.0
	// MaxSources is how many source recipes a row names before "+N".
	MaxSources = 3
)

// Adjustment is a pending quantity to add for a product. Quantity is kept as
// typed so partial input survives editing.
type Adjustment struct {
	Quantity string
	Unit     string
	Note     string
}

// Blank reports whether quantity and unit are both empty.
func (a Adjustment) Blank() bool {
	return strings.TrimSpace(a.Quantity) == "" && strings.TrimSpace(a.Unit) == ""
}

// Amount parses the quantity. ok is false unless it is a finite number > 0.
func (a Adjustment) Amount() (float64, bool) {
	f, ok := domain.ParseQuantity(a.Quantity)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

// Session is the state of one open bulk planning modal.
//
// Adjustments are keyed by effective product id: the substitute's id when the
// ingredient is substituted, else the ingredient's own id. Substitutions and
// Hidden are keyed by the original ingredient product id.
type Session struct {
	ListID        int64
	Data          domain.PlanningData
	Units         []string
	Products      []domain.Product
	Adjustments   map[int64]Adjustment
	Substitutions map[int64]domain.Product
	Hidden        map[int64]bool
}

// NewSession builds the state from freshly loaded resources.
func NewSession(listID int64, data domain.PlanningData, units []string, products []domain.Product, subs []domain.Substitution) *Session {
	s := &Session{
		ListID:        listID,
		Data:          data,
		Units:         units,
		Products:      products,
		Adjustments:   map[int64]Adjustment{},
		Substitutions: map[int64]domain.Product{},
		Hidden:        map[int64]bool{},
	}
	for _, sub := range subs {
		if p, ok := s.resolveSubstitute(sub); ok {
			s.Substitutions[sub.OriginalProductID] = p
		}
	}
	return s
}

func (s *Session) resolveSubstitute(sub domain.Substitution) (domain.Product, bool) {
	if sub.SubstituteProduct != nil {
		return *sub.SubstituteProduct, true
	}
	return s.product(sub.SubstituteID)
}

func (s *Session) product(id int64) (domain.Product, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// ReplaceData swaps in refetched planning data, keeping pending state.
func (s *Session) ReplaceData(data domain.PlanningData) {
	s.Data = data
}

// Row is the view-model of one ingredient.
type Row struct {
	Ingredient domain.PlanningIngredient
	// Name is always the original ingredient's product name.
	Name       string
	Substitute *domain.Product
	Adjustment *Adjustment
	Sources    string
}

// ProductID returns the original ingredient product id.
func (r Row) ProductID() int64 { return r.Ingredient.ProductID }

// EffectiveProductID is the id items are saved under.
func (r Row) EffectiveProductID() int64 {
	if r.Substitute != nil {
		return r.Substitute.ID
	}
	return r.Ingredient.ProductID
}

// Rows returns the visible ingredient rows sorted by product name,
// case-insensitively.
func (s *Session) Rows() []Row {
	rows := make([]Row, 0, len(s.Data.Ingredients))
	for _, ing := range s.Data.Ingredients {
		if s.Hidden[ing.ProductID] {
			continue
		}
		rows = append(rows, s.row(ing))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := strings.ToLower(rows[i].Name), strings.ToLower(rows[j].Name)
		if a != b {
			return a < b
		}
		return rows[i].ProductID() < rows[j].ProductID()
	})
	return rows
}

func (s *Session) row(ing domain.PlanningIngredient) Row {
	r := Row{
		Ingredient: ing,
		Name:       ing.Product.Name,
		Sources:    SourcesLabel(ing.Sources),
	}
	if sub, ok := s.Substitutions[ing.ProductID]; ok {
		r.Substitute = &sub
	}
	if adj, ok := s.Adjustments[r.EffectiveProductID()]; ok {
		r.Adjustment = &adj
	}
	return r
}

func (s *Session) ingredient(productID int64) (domain.PlanningIngredient, bool) {
	for _, ing := range s.Data.Ingredients {
		if ing.ProductID == productID {
			return ing, true
		}
	}
	return domain.PlanningIngredient{}, false
}

// effectiveID maps an original ingredient id to the id adjustments use.
func (s *Session) effectiveID(productID int64) int64 {
	if sub, ok := s.Substitutions[productID]; ok {
		return sub.ID
	}
	return productID
}

// DefaultUnit is the unit of a flat quick add: the unit already on the list
// for this product, else the effective product's native unit.
func (s *Session) DefaultUnit(productID int64) string {
	ing, ok := s.ingredient(productID)
	if !ok {
		return ""
	}
	if ing.OnList != nil && ing.OnList.Unit != "" {
		return ing.OnList.Unit
	}
	if sub, ok := s.Substitutions[productID]; ok && sub.Unit != "" {
		return sub.Unit
	}
	return ing.Product.Unit
}

// QuickAddPrimary pre-fills the adjustment from the first computed need.
// Ingredients without a need fall back to QuickAddFlat.
func (s *Session) QuickAddPrimary(productID int64) {
	ing, ok := s.ingredient(productID)
	if !ok {
		return
	}
	need, ok := ing.PrimaryNeed()
	if !ok || need.Quantity <= 0 {
		s.QuickAddFlat(productID)
		return
	}
	s.setAdjustment(productID, Adjustment{Quantity: need.Quantity.String(), Unit: need.Unit})
}

// QuickAddFlat pre-fills 1 × DefaultUnit.
func (s *Session) QuickAddFlat(productID int64) {
	if _, ok := s.ingredient(productID); !ok {
		return
	}
	s.setAdjustment(productID, Adjustment{Quantity: "1", Unit: s.DefaultUnit(productID)})
}

// setAdjustment stores adj, keeping any note already entered.
func (s *Session) setAdjustment(productID int64, adj Adjustment) {
	key := s.effectiveID(productID)
	if adj.Note == "" {
		adj.Note = s.Adjustments[key].Note
	}
	s.Adjustments[key] = adj
}

// Edit replaces the adjustment for productID with manual input. Blank
// quantity and unit clear it entirely.
func (s *Session) Edit(productID int64, adj Adjustment) {
	if adj.Blank() {
		s.Clear(productID)
		return
	}
	s.Adjustments[s.effectiveID(productID)] = adj
}

// Adjustment returns the pending adjustment for an ingredient.
func (s *Session) Adjustment(productID int64) (Adjustment, bool) {
	adj, ok := s.Adjustments[s.effectiveID(productID)]
	return adj, ok
}

// Clear removes the pending adjustment for an ingredient.
func (s *Session) Clear(productID int64) {
	delete(s.Adjustments, s.effectiveID(productID))
}

// Substitute sets sub as the replacement for productID. A pending
// adjustment moves to the substitute's key.
func (s *Session) Substitute(productID int64, sub domain.Product) error {
	if sub.ID == productID {
		return fmt.Errorf("product %d cannot substitute itself", productID)
	}
	if _, ok := s.ingredient(productID); !ok {
		return fmt.Errorf("product %d is not planned", productID)
	}
	oldKey := s.effectiveID(productID)
	adj, had := s.Adjustments[oldKey]
	delete(s.Adjustments, oldKey)
	s.Substitutions[productID] = sub
	if had {
		s.Adjustments[sub.ID] = adj
	}
	return nil
}

// ClearSubstitution drops the substitution for productID together with any
// adjustment keyed on the substitute. It returns the removed substitute so
// the caller can delete list items created under it.
func (s *Session) ClearSubstitution(productID int64) (domain.Product, bool) {
	sub, ok := s.Substitutions[productID]
	if !ok {
		return domain.Product{}, false
	}
	delete(s.Substitutions, productID)
	delete(s.Adjustments, sub.ID)
	return sub, true
}

// SubstitutionSnapshot is the substitution and adjustment of one ingredient
// at a point in time, used to undo a change the backend rejected.
type SubstitutionSnapshot struct {
	ProductID  int64
	substitute *domain.Product
	adj        Adjustment
	hasAdj     bool
}

// Snapshot captures the current substitution state of productID.
func (s *Session) Snapshot(productID int64) SubstitutionSnapshot {
	snap := SubstitutionSnapshot{ProductID: productID}
	if sub, ok := s.Substitutions[productID]; ok {
		snap.substitute = &sub
	}
	snap.adj, snap.hasAdj = s.Adjustments[s.effectiveID(productID)]
	return snap
}

// Restore puts back a snapshot taken before Substitute or
// ClearSubstitution. The adjustment returns to the key it had then.
func (s *Session) Restore(snap SubstitutionSnapshot) {
	pid := snap.ProductID
	delete(s.Adjustments, s.effectiveID(pid))
	if snap.substitute != nil {
		s.Substitutions[pid] = *snap.substitute
	} else {
		delete(s.Substitutions, pid)
	}
	if snap.hasAdj {
		s.Adjustments[s.effectiveID(pid)] = snap.adj
	}
}

// Hide dismisses a row for this session and discards its pending
// adjustment.
func (s *Session) Hide(productID int64) {
	delete(s.Adjustments, s.effectiveID(productID))
	s.Hidden[productID] = true
}

// SwipeDismiss hides the row when the leftward travel exceeds
// DismissThreshold. dx is start.x − end.x in px.
func (s *Session) SwipeDismiss(productID int64, dx float64) bool {
	if dx <= DismissThreshold {
		return false
	}
	s.Hide(productID)
	return true
}

// HiddenCount returns the number of dismissed rows.
func (s *Session) HiddenCount() int { return len(s.Hidden) }

// Unhide restores all dismissed rows.
func (s *Session) Unhide() {
	s.Hidden = map[int64]bool{}
}

// Batch derives the save calls: a note update for every valid adjustment
// with a note, and one bulk item per adjustment with a strictly positive
// quantity. Output is ordered by product id.
func (s *Session) Batch() ([]domain.ProductNote, []domain.BulkItem) {
	keys := make([]int64, 0, len(s.Adjustments))
	for k := range s.Adjustments {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var notes []domain.ProductNote
	var items []domain.BulkItem
	for _, id := range keys {
		adj := s.Adjustments[id]
		qty, ok := adj.Amount()
		if !ok {
			continue
		}
		if note := strings.TrimSpace(adj.Note); note != "" {
			notes = append(notes, domain.ProductNote{ProductID: id, Note: note})
		}
		items = append(items, domain.BulkItem{
			ProductID: id,
			Quantity:  qty,
			Unit:      strings.TrimSpace(adj.Unit),
		})
	}
	return notes, items
}

// SourcesLabel joins up to MaxSources recipe titles and appends "+N" for
// the rest.
func SourcesLabel(sources []string) string {
	if len(sources) <= MaxSources {
		return strings.Join(sources, ", ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(sources[:MaxSources], ", "), len(sources)-MaxSources)
}

// SearchProducts returns catalog products whose name contains query,
// case-insensitively, excluding exclude. At most limit results are returned.
func (s *Session) SearchProducts(query string, exclude int64, limit int) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []domain.Product
	for _, p := range s.Products {
		if p.ID == exclude {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// NoteSuggestions returns distinct existing product notes starting with
// prefix, sorted.
func (s *Session) NoteSuggestions(prefix string) []string {
	p := strings.ToLower(strings.TrimSpace(prefix))
	seen := map[string]bool{}
	var out []string
	for _, prod := range s.Products {
		n := strings.TrimSpace(prod.Note)
		if n == "" || seen[n] || !strings.HasPrefix(strings.ToLower(n), p) {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// CycleUnit returns the unit delta steps from current in Units. An unknown
// current unit starts from the first entry.
func (s *Session) CycleUnit(current string, delta int) string {
	n := len(s.Units)
	if n == 0 {
		return current
	}
	idx := -1
	for i, u := range s.Units {
		if u == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s.Units[0]
	}
	return s.Units[((idx+delta)%n+n)%n]
}
