package models

import "time"

// Profile is the client's read copy of the externally owned user record.
type Profile struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL,omitempty"`
	Role        Role      `json:"role"`
	Provider    Provider  `json:"provider"`
	CreatedAt   time.Time `json:"createdAt"`
}
