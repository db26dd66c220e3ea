// Package forms validates page form input. Each parser returns the cleaned
// input together with a per-field error map; an empty map means the input is
// usable as-is.
package forms

import (
	"net/mail"
	"strings"
)

type FieldErrors map[string]string

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type TaskInput struct {
	Title string
}

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	maxPasswordLen = 72 // bcrypt rejects longer inputs
	maxTitleLen    = 200
)

func ParseRegister(username, email, password string) (RegisterInput, FieldErrors) {
	errs := FieldErrors{}

	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen {
		errs["username"] = "Username must be at least 3 characters long"
	} else if len(username) > maxUsernameLen {
		errs["username"] = "Username must be at most 50 characters long"
	} else if !validUsername(username) {
		errs["username"] = "Username can only contain letters, numbers, and underscores"
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		errs["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "Enter a valid email address"
	}

	if password == "" {
		errs["password"] = "Password is required"
	} else if len(password) > maxPasswordLen {
		errs["password"] = "Password must be at most 72 characters long"
	}

	return RegisterInput{Username: username, Email: email, Password: password}, errs
}

func ParseLogin(email, password string) (LoginInput, FieldErrors) {
	errs := FieldErrors{}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		errs["email"] = "Email is required"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}

	return LoginInput{Email: email, Password: password}, errs
}

func ParseTask(title string) (TaskInput, FieldErrors) {
	errs := FieldErrors{}

	title = strings.TrimSpace(title)
	if title == "" {
		errs["title"] = "Title is required"
	} else if len(title) > maxTitleLen {
		errs["title"] = "Title must be at most 200 characters long"
	}

	return TaskInput{Title: title}, errs
}

func validUsername(username string) bool {
	for _, char := range username {
		if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') || char == '_') {
			return false
		}
	}
	return true
}
