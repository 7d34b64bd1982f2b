package service

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s must not be blank", domain.ErrInvalidRequest, field)
	}
	return nil
}

func requireDescription(field, value string) error {
	if err := requireText(field, value); err != nil {
		return err
	}
	if utf8.RuneCountInString(value) > models.MaxDescriptionLength {
		return fmt.Errorf("%w: %s is longer than %d characters", domain.ErrInvalidRequest, field, models.MaxDescriptionLength)
	}
	return nil
}

func validateUser(u models.User) error {
	if err := requireText("name", u.Name); err != nil {
		return err
	}
	if err := requireText("email", u.Email); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(u.Email)
	if err != nil || addr.Address != u.Email {
		return fmt.Errorf("%w: email %q is not a valid address", domain.ErrInvalidRequest, u.Email)
	}
	return nil
}

func validateItem(it models.Item) error {
	if err := requireText("name", it.Name); err != nil {
		return err
	}
	return requireDescription("description", it.Description)
}
