package entity

// CreditsResponse represents the response for the credits endpoint
type CreditsResponse struct {
	Success bool             `json:"success"`
	Credits int64            `json:"credits"`
	User    CreditsUserBrief `json:"user"`
}

// CreditsUserBrief is the public slice of the user shown next to the balance
type CreditsUserBrief struct {
	Name string `json:"name"`
}

// UserToCreditsResponse converts a User entity to a CreditsResponse
func UserToCreditsResponse(user *User) CreditsResponse {
	return CreditsResponse{
		Success: true,
		Credits: user.CreditBalance(),
		User:    CreditsUserBrief{Name: user.Name},
	}
}
