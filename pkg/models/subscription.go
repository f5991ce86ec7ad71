package models

// MessageResponse is the common {message} body returned by every backend
// operation, on success and on failure.
type MessageResponse struct {
	Message string `json:"message"`
}

// ExistingUser is the stored registration returned by the user lookup.
type ExistingUser struct {
	FullName       string   `json:"fullName"`
	Email          string   `json:"email,omitempty"`
	WhatsappStatus bool     `json:"whatsappStatus"`
	TelegramStatus bool     `json:"telegramStatus"`
	EmailStatus    *bool    `json:"emailStatus,omitempty"`
	Interests      []string `json:"interests"`
}

// UserLookupResponse is the body of GET /auth/user-by-phone/{phone}.
type UserLookupResponse struct {
	Exists  bool          `json:"exists"`
	User    *ExistingUser `json:"user,omitempty"`
	Message string        `json:"message,omitempty"`
}

// SignupRequest is sent to /subscriptions/free-plan-signup.
type SignupRequest struct {
	PreferredName string   `json:"preferredName,omitempty"`
	Email         string   `json:"email,omitempty"`
	PhoneNumber   string   `json:"phoneNumber"`
	IsWhatsapp    bool     `json:"isWhatsapp"`
	IsTelegram    bool     `json:"isTelegram"`
	IsEmail       bool     `json:"isEmail"`
	Interests     []string `json:"interests"`
}

// UpdateSignupRequest is sent to /subscriptions/update-user-signup.
type UpdateSignupRequest struct {
	Email         string   `json:"email,omitempty"`
	PhoneNumber   string   `json:"phoneNumber,omitempty"`
	PreferredName string   `json:"preferredName,omitempty"`
	Interests     []string `json:"interests"`
	IsWhatsapp    bool     `json:"isWhatsapp"`
	IsTelegram    bool     `json:"isTelegram"`
	IsEmail       bool     `json:"isEmail"`
}
