package response

import "github.com/google/uuid"

type VerifyResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	Role         string    `json:"role"`
	UserID       uuid.UUID `json:"user_id"`
}

type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type CodeSentResponse struct {
	Message string    `json:"message"`
	UserID  uuid.UUID `json:"user_id"`
}
