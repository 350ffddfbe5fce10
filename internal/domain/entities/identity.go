package entities

// Identity is the authenticated caller as supplied by the external
// identity provider. UserID is the provider's stable subject id.
type Identity struct {
	UserID    string `json:"userId"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"fullName,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
