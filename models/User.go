package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email" gorm:"uniqueIndex"`
	Password       string `json:"password"`
	SocialLogin    bool   `json:"socialLogin"`
	SocialProvider string `json:"socialProvider"`
	AvatarURL      string `json:"avatarURL"`
	Role           string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, admin, super_admin

	Reviews   []Review   `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
	Purchases []Purchase `json:"purchases,omitempty" gorm:"foreignKey:UserID"`
}

// Custom JSON marshaling so the password hash never leaves the server
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Password  string     `json:"password,omitempty"`
		Reviews   []Review   `json:"reviews,omitempty"`
		Purchases []Purchase `json:"purchases,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(u),
	}

	aux.Password = ""
	aux.Reviews = nil
	aux.Purchases = nil

	return json.Marshal(aux)
}
