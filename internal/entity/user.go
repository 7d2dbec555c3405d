package entity

import "github.com/google/uuid"

type User struct {
	Id       uuid.UUID `json:"id" db:"id"`
	Username string    `json:"username" db:"username"`
	Name     string    `json:"name" db:"name"`
	Email    string    `json:"email" db:"email"`
}
