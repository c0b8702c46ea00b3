package dto

// ErrorResponse cuerpo de error HTTP. Details lleva datos de diagnóstico (ej. stock actual y solicitado).
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
