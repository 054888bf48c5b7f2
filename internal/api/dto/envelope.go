package dto

// Response is the uniform envelope of every board endpoint.
// Data and Total render as null when absent.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Total   *int   `json:"total"`
}

// ListResponse wraps a full collection and its length.
func ListResponse[T any](message string, items []T) Response {
	if items == nil {
		items = []T{}
	}
	total := len(items)
	return Response{Success: true, Message: message, Data: items, Total: &total}
}

// ItemResponse wraps a single value.
func ItemResponse(message string, data any) Response {
	return Response{Success: true, Message: message, Data: data}
}

// WelcomeResponse describes the API at GET /.
type WelcomeResponse struct {
	Version   string   `json:"version"`
	Features  []string `json:"features"`
	Endpoints []string `json:"endpoints"`
}
