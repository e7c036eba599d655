package model

type RenderRequestBody struct {
	Format string `json:"format"`
	Events string `json:"events"`
}

type RenderResponse struct {
	Format string `json:"format"`
	Songs  int    `json:"songs"`
	Output string `json:"output"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
