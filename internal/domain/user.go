package domain

import (
	"errors"
	"strings"
)

var ErrEmptyListName = errors.New("list name is empty")

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// DefaultListColor matches the color picker's first swatch.
const DefaultListColor = "#3B82F6"

type List struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

type ListInput struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

func (in ListInput) Normalize() (ListInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, ErrEmptyListName
	}
	if in.Color == "" {
		in.Color = DefaultListColor
	}
	in.Description = strings.TrimSpace(in.Description)
	return in, nil
}
