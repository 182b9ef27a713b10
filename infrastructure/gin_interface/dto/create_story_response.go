package dto

type CreateStoryResponse struct {
	RunID       string `json:"run_id"`
	VideoKey    string `json:"video_key"`
	VideoRegion string `json:"video_region"`
	Title       string `json:"title"`
}

type RunErrorResponse struct {
	RunID    string `json:"run_id,omitempty"`
	Kind     string `json:"kind"`
	Attempts int    `json:"attempts,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message"`
}
