// Package model defines domain entities for the application.
package model

import "time"

// Profile defaults applied at signup when the client omits them.
const (
	DefaultUserName   = "Жак-Ив Кусто"
	DefaultUserAbout  = "Исследователь"
	DefaultUserAvatar = "https://pictures.s3.yandex.net/resources/jacques-cousteau_1604399756.png"
)

// User represents a registered account.
// Email and PasswordHash are only populated by lookups that explicitly
// select them; the default read projection leaves both empty.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	About        string    `json:"about"`
	Avatar       string    `json:"avatar"`
	Username     string    `json:"username"`
	Email        string    `json:"-"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ApplyDefaults fills empty profile fields with their default values.
func (u *User) ApplyDefaults() {
	if u.Name == "" {
		u.Name = DefaultUserName
	}
	if u.About == "" {
		u.About = DefaultUserAbout
	}
	if u.Avatar == "" {
		u.Avatar = DefaultUserAvatar
	}
}

// WithoutSecrets returns a copy of the user with email and password hash cleared.
func (u *User) WithoutSecrets() *User {
	c := *u
	c.Email = ""
	c.PasswordHash = ""
	return &c
}
