package domain

type Store struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Note  string `json:"note,omitempty"`
	Store *Store `json:"Store,omitempty"`
}

// Substitution replaces an ingredient's product for one shopping list.
type Substitution struct {
	ListID            int64    `json:"ListId"`
	OriginalProductID int64    `json:"original_product_id"`
	SubstituteID      int64    `json:"substitute_product_id"`
	SubstituteProduct *Product `json:"SubstituteProduct,omitempty"`
}

// ProductNote is a free-text note to persist on a product.
type ProductNote struct {
	ProductID int64
	Note      string
}
