package dto

type CreateStoryRequest struct {
	PromptSeed string `json:"prompt_seed"`
	UserID     string `json:"user_id" binding:"required"`
}
