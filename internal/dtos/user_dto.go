package dtos

type UserCreationRequest struct {
	Email string `json:"email" binding:"required,email"`

	// Optional Fields
	EmailAlerts    *bool `json:"email_alerts"`
	TelegramChatID int64 `json:"telegram_chat_id"`
}

// UserCreationResponse carries the API key exactly once, at creation time.
type UserCreationResponse struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	APIKey string `json:"api_key"`
}
