package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/alexanderramin/gabelguru/internal/calendar"
	"github.com/alexanderramin/gabelguru/internal/domain"
)

// Call records one request received by a Backend.
type Call struct {
	Method string
	Path   string
	Body   []byte
}

// Backend is an in-memory stand-in for the REST API. Handlers mutate the
// stored state the way the real server does so that refetches observe writes.
type Backend struct {
	Server *httptest.Server

	mu            sync.Mutex
	menus         []domain.Menu
	lists         []domain.List
	recipes       []domain.Recipe
	products      []domain.Product
	units         []string
	planning      map[int64]domain.PlanningData
	substitutions map[int64][]domain.Substitution
	chatReply     string
	fail          map[string]int
	calls         []Call
	nextID        int64
}

// NewBackend starts a fake backend closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		units:         []string{"g", "kg", "ml", "l", "Stück"},
		planning:      map[int64]domain.PlanningData{},
		substitutions: map[int64][]domain.Substitution{},
		fail:          map[string]int{},
		chatReply:     "Alles klar.",
		nextID:        9000,
	}
	b.Server = httptest.NewServer(b.routes())
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the API base URL of the fake.
func (b *Backend) URL() string { return b.Server.URL }

func (b *Backend) AddMenus(menus ...domain.Menu) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.menus = append(b.menus, menus...)
}

func (b *Backend) AddLists(lists ...domain.List) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lists = append(b.lists, lists...)
}

func (b *Backend) AddRecipes(recipes ...*domain.Recipe) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range recipes {
		b.recipes = append(b.recipes, *r)
	}
}

func (b *Backend) AddProducts(products ...domain.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products = append(b.products, products...)
}

func (b *Backend) SetPlanning(listID int64, data domain.PlanningData) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.planning[listID] = data
}

func (b *Backend) SetChatReply(reply string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chatReply = reply
}

// FailNext makes the next n requests whose "METHOD /pattern" matches key
// answer with 500.
func (b *Backend) FailNext(key string, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[key] = n
}

// Calls returns a copy of all requests received so far.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.calls)
}

// CallsTo returns the requests matching method and path.
func (b *Backend) CallsTo(method, path string) []Call {
	var out []Call
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (b *Backend) Menus() []domain.Menu {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.menus)
}

func (b *Backend) Lists() []domain.List {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.lists)
}

// ListByID returns the stored list, or nil.
func (b *Backend) ListByID(id int64) *domain.List {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.listIndex(id); i >= 0 {
		l := b.lists[i]
		return &l
	}
	return nil
}

func (b *Backend) SubstitutionsFor(listID int64) []domain.Substitution {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.substitutions[listID])
}

func (b *Backend) routes() http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h func(w http.ResponseWriter, r *http.Request, body []byte)) {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			var body []byte
			if r.Body != nil {
				body, _ = io.ReadAll(r.Body)
			}
			b.mu.Lock()
			b.calls = append(b.calls, Call{Method: r.Method, Path: r.URL.Path, Body: body})
			if n := b.fail[pattern]; n > 0 {
				b.fail[pattern] = n - 1
				b.mu.Unlock()
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "injected failure"})
				return
			}
			b.mu.Unlock()
			h(w, r, body)
		})
	}

	handle("GET /menus", b.getMenus)
	handle("POST /menus", b.createMenu)
	handle("PUT /menus/{id}", b.updateMenu)
	handle("DELETE /menus/{id}", b.deleteMenu)
	handle("GET /lists", b.getLists)
	handle("POST /lists", b.createList)
	handle("GET /lists/{id}", b.getList)
	handle("PUT /lists/{id}", b.updateList)
	handle("DELETE /lists/{id}", b.deleteList)
	handle("POST /lists/{id}/merge", b.mergeList)
	handle("GET /lists/{id}/planning-data", b.getPlanning)
	handle("GET /lists/{id}/substitutions", b.getSubstitutions)
	handle("POST /lists/{id}/substitutions", b.saveSubstitution)
	handle("DELETE /lists/{id}/substitutions/{productId}", b.deleteSubstitution)
	handle("POST /lists/{id}/bulk-items", b.bulkItems)
	handle("DELETE /lists/items/{id}", b.deleteItem)
	handle("GET /products", b.getProducts)
	handle("PUT /products/{id}", b.updateProduct)
	handle("GET /products/units", b.getUnits)
	handle("GET /recipes", b.getRecipes)
	handle("GET /recipes/{id}", b.getRecipe)
	handle("POST /ai/chat", b.chat)
	return mux
}

func (b *Backend) getMenus(w http.ResponseWriter, r *http.Request, _ []byte) {
	start, end := r.URL.Query().Get("start"), r.URL.Query().Get("end")
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []domain.Menu{}
	for _, m := range b.menus {
		k := calendar.NormalizeKey(m.Date)
		if (start == "" || k >= start) && (end == "" || k <= end) {
			out = append(out, m)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createMenu(w http.ResponseWriter, _ *http.Request, body []byte) {
	var in domain.MenuInput
	if err := json.Unmarshal(body, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	m := menuFromInput(b.nextID, in)
	b.menus = append(b.menus, m)
	writeJSON(w, http.StatusCreated, m)
}

func (b *Backend) updateMenu(w http.ResponseWriter, r *http.Request, body []byte) {
	id := pathID(r, "id")
	var in domain.MenuInput
	if err := json.Unmarshal(body, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.menus {
		if b.menus[i].ID == id {
			b.menus[i] = menuFromInput(id, in)
			writeJSON(w, http.StatusOK, b.menus[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu not found"})
}

func (b *Backend) deleteMenu(w http.ResponseWriter, r *http.Request, _ []byte) {
	id := pathID(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	b.menus = slices.DeleteFunc(b.menus, func(m domain.Menu) bool { return m.ID == id })
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) getLists(w http.ResponseWriter, _ *http.Request, _ []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := append([]domain.List{}, b.lists...)
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createList(w http.ResponseWriter, _ *http.Request, body []byte) {
	var in domain.ListInput
	_ = json.Unmarshal(body, &in)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	l := domain.List{ID: b.nextID, Date: in.Date, Name: in.Name, Status: domain.ListActive}
	b.lists = append(b.lists, l)
	writeJSON(w, http.StatusCreated, l)
}

func (b *Backend) getList(w http.ResponseWriter, r *http.Request, _ []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.listIndex(pathID(r, "id")); i >= 0 {
		writeJSON(w, http.StatusOK, b.lists[i])
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
}

func (b *Backend) updateList(w http.ResponseWriter, r *http.Request, body []byte) {
	var in domain.ListInput
	_ = json.Unmarshal(body, &in)
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.listIndex(pathID(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}
	if in.Date != "" {
		b.lists[i].Date = in.Date
	}
	if in.Name != "" {
		b.lists[i].Name = in.Name
	}
	if in.Status != "" {
		b.lists[i].Status = in.Status
	}
	writeJSON(w, http.StatusOK, b.lists[i])
}

func (b *Backend) deleteList(w http.ResponseWriter, r *http.Request, _ []byte) {
	id := pathID(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lists = slices.DeleteFunc(b.lists, func(l domain.List) bool { return l.ID == id })
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) mergeList(w http.ResponseWriter, r *http.Request, body []byte) {
	var in struct {
		SourceListID int64 `json:"sourceListId"`
	}
	_ = json.Unmarshal(body, &in)
	b.mu.Lock()
	defer b.mu.Unlock()
	ti, si := b.listIndex(pathID(r, "id")), b.listIndex(in.SourceListID)
	if ti < 0 || si < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}
	target := b.lists[ti].ID
	for _, it := range b.lists[si].ListItems {
		it.ListID = target
		b.lists[ti].ListItems = append(b.lists[ti].ListItems, it)
	}
	b.lists[ti].TotalCost += b.lists[si].TotalCost
	b.lists = slices.Delete(b.lists, si, si+1)
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) getPlanning(w http.ResponseWriter, r *http.Request, _ []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.planning[pathID(r, "id")])
}

func (b *Backend) getSubstitutions(w http.ResponseWriter, r *http.Request, _ []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := append([]domain.Substitution{}, b.substitutions[pathID(r, "id")]...)
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) saveSubstitution(w http.ResponseWriter, r *http.Request, body []byte) {
	var in struct {
		Original   int64 `json:"original_product_id"`
		Substitute int64 `json:"substitute_product_id"`
	}
	_ = json.Unmarshal(body, &in)
	listID := pathID(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := slices.DeleteFunc(b.substitutions[listID], func(s domain.Substitution) bool {
		return s.OriginalProductID == in.Original
	})
	sub := domain.Substitution{ListID: listID, OriginalProductID: in.Original, SubstituteID: in.Substitute}
	if p := b.product(in.Substitute); p != nil {
		sub.SubstituteProduct = p
	}
	b.substitutions[listID] = append(subs, sub)
	writeJSON(w, http.StatusCreated, sub)
}

func (b *Backend) deleteSubstitution(w http.ResponseWriter, r *http.Request, _ []byte) {
	listID, original := pathID(r, "id"), pathID(r, "productId")
	b.mu.Lock()
	defer b.mu.Unlock()
	b.substitutions[listID] = slices.DeleteFunc(b.substitutions[listID], func(s domain.Substitution) bool {
		return s.OriginalProductID == original
	})
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) bulkItems(w http.ResponseWriter, r *http.Request, body []byte) {
	var in struct {
		Items []domain.BulkItem `json:"items"`
	}
	if err := json.Unmarshal(body, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.listIndex(pathID(r, "id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return
	}
	for _, it := range in.Items {
		b.nextID++
		b.lists[i].ListItems = append(b.lists[i].ListItems, domain.ListItem{
			ID:        b.nextID,
			ListID:    b.lists[i].ID,
			ProductID: it.ProductID,
			Quantity:  domain.Quantity(it.Quantity),
			Unit:      it.Unit,
		})
	}
	writeJSON(w, http.StatusCreated, b.lists[i].ListItems)
}

func (b *Backend) deleteItem(w http.ResponseWriter, r *http.Request, _ []byte) {
	id := pathID(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.lists {
		b.lists[i].ListItems = slices.DeleteFunc(b.lists[i].ListItems, func(it domain.ListItem) bool {
			return it.ID == id
		})
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) getProducts(w http.ResponseWriter, _ *http.Request, _ []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := append([]domain.Product{}, b.products...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) updateProduct(w http.ResponseWriter, r *http.Request, body []byte) {
	var in struct {
		Note string `json:"note"`
	}
	_ = json.Unmarshal(body, &in)
	b.mu.Lock()
	defer b.mu.Unlock()
	p := b.product(pathID(r, "id"))
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}
	for i := range b.products {
		if b.products[i].ID == p.ID {
			b.products[i].Note = in.Note
			writeJSON(w, http.StatusOK, b.products[i])
			return
		}
	}
}

func (b *Backend) getUnits(w http.ResponseWriter, _ *http.Request, _ []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.units)
}

func (b *Backend) getRecipes(w http.ResponseWriter, _ *http.Request, _ []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := append([]domain.Recipe{}, b.recipes...)
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) getRecipe(w http.ResponseWriter, r *http.Request, _ []byte) {
	id := pathID(r, "id")
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rec := range b.recipes {
		if rec.ID == id {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "recipe not found"})
}

func (b *Backend) chat(w http.ResponseWriter, _ *http.Request, _ []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"reply": b.chatReply})
}

func (b *Backend) listIndex(id int64) int {
	for i, l := range b.lists {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) product(id int64) *domain.Product {
	for _, p := range b.products {
		if p.ID == id {
			prod := p
			return &prod
		}
	}
	return nil
}

func menuFromInput(id int64, in domain.MenuInput) domain.Menu {
	return domain.Menu{
		ID:          id,
		Date:        in.Date,
		MealType:    in.MealType,
		Description: in.Description,
		RecipeID:    in.RecipeID,
		IsEatingOut: in.IsEatingOut,
	}
}

func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(r.PathValue(name), 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
