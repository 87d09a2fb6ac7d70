package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ListResponse envoltorio para listados.
type ListResponse[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}

// NewListResponse construye el envoltorio; nunca serializa items como null.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Total: len(items), Items: items}
}
