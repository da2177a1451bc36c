package model

// User is the signed-in identity provided by the external auth service.
// Admin identities may modify and delete any post or comment.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
}
