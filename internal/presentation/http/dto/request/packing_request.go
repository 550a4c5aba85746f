package request

// RenderPDFRequest represents a PDF print run: either a delivery date or a
// hand-picked list of orders
type RenderPDFRequest struct {
	Date     string   `json:"date,omitempty"` // "2006-01-02"
	OrderIDs []string `json:"order_ids,omitempty"`
	SortBy   string   `json:"sort_by,omitempty"` // "name" (default) or "route"
}
