package server

import "context"

// HealthOutput is the response for the health check endpoint.
type HealthOutput struct {
	Body struct {
		Status string `json:"status"`
		Store  string `json:"store"`
	}
}

// Health reports service health, including store connectivity.
func (h *Handler) Health(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Status = "ok"

	if err := h.repo.Ping(ctx); err != nil {
		out.Body.Store = "unhealthy"
		out.Body.Status = "degraded"
	} else {
		out.Body.Store = "healthy"
	}

	return out, nil
}
