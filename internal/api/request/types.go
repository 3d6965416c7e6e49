package request

// CreateSessionRequest is the request body for creating a participant session
type CreateSessionRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
}

// OperatorLoginRequest is the request body for operator login
type OperatorLoginRequest struct {
	Username   string `json:"username"`
	Passphrase string `json:"passphrase"`
}

// AnswerRequest is the request body for submitting an answer
type AnswerRequest struct {
	Text string `json:"text"`
}

// ResetConfirmRequest is the request body for the second reset step
type ResetConfirmRequest struct {
	ConfirmToken string `json:"confirm_token"`
	Action       string `json:"action"`
}
