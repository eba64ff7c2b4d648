package httpdto

// Response is the JSON envelope every API reply uses.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func NewSuccessResponse[T any](data T) Response[T] {
	return Response[T]{
		Success: true,
		Data:    data,
	}
}

func NewErrorResponse(err string, code string) Response[any] {
	return Response[any]{
		Success: false,
		Error:   err,
		Code:    code,
	}
}

// ViewResponse is what the front controller returns for commands that
// name a view: the view layer renders View with Data.
type ViewResponse struct {
	View string         `json:"view"`
	Data map[string]any `json:"data,omitempty"`
}
