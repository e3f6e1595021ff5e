package dto

// MessageResponse is the body of operations that only confirm success
type MessageResponse struct {
	Message string `json:"message"`
}

// IndexResponse is returned by the service root
type IndexResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports liveness and the active storage backend
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Storage string `json:"storage" example:"postgres"`
}
