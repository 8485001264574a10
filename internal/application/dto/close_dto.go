package dto

// CloseRequest body para POST /api/closes. Month (YYYY-MM) limita el cierre a los conteos de ese
// mes; vacío usa todos los conteos de la tienda.
type CloseRequest struct {
	StoreID string `json:"store_id" form:"store_id" validate:"required,max=20"`
	Month   string `json:"month" form:"month" validate:"omitempty,datetime=2006-01"`
}

// CloseResponse resumen de un cierre de mes.
type CloseResponse struct {
	CloseID string `json:"close_id"`
	StoreID string `json:"store_id"`
	Month   string `json:"month,omitempty"`
	Counted int    `json:"counted"`
	Updated int    `json:"updated"`
	Created int    `json:"created"`
}
