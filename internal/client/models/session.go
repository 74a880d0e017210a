package models

// Session holds the credentials and organization identity returned by a
// successful login or registration.
type Session struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	OrganizationID   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
}
