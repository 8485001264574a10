package entity

// Item es una entrada del maestro de ítems.
type Item struct {
	ItemCode      string `json:"item_code"`
	ItemName      string `json:"item_name"`
	Specification string `json:"specification"`
	Unit          string `json:"unit"`
}

// Store es una tienda seleccionable.
type Store struct {
	Code string `json:"store_code"`
	Name string `json:"store_name"`
}

// Supplier es un proveedor que ofrece el formulario de compras.
type Supplier struct {
	Name string `json:"name"`
}
