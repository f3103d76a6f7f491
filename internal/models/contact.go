package models

import "strings"

// Contact identifies who a login code is for. Exactly one of Email or Phone must be set.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Normalize trims both fields and lower-cases the email.
func (c Contact) Normalize() Contact {
	return Contact{
		Email: strings.ToLower(strings.TrimSpace(c.Email)),
		Phone: strings.TrimSpace(c.Phone),
	}
}

// Valid reports whether exactly one channel is set.
func (c Contact) Valid() bool {
	return (c.Email == "") != (c.Phone == "")
}

// EmailPtr returns the email as a nullable column value.
func (c Contact) EmailPtr() *string {
	if c.Email == "" {
		return nil
	}
	e := c.Email
	return &e
}

// PhonePtr returns the phone as a nullable column value.
func (c Contact) PhonePtr() *string {
	if c.Phone == "" {
		return nil
	}
	p := c.Phone
	return &p
}

// Matches reports whether email or phone equals the non-empty side of c.
func (c Contact) Matches(email, phone *string) bool {
	if c.Email != "" && email != nil && *email == c.Email {
		return true
	}
	if c.Phone != "" && phone != nil && *phone == c.Phone {
		return true
	}
	return false
}
