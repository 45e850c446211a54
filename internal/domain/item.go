package domain

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Field length bounds for Item.
const (
	MinNameLength        = 1
	MaxNameLength        = 255
	MinDescriptionLength = 1
	MaxDescriptionLength = 1000
)

// Common validation errors for Item
var (
	ErrEmptyItemName        = errors.New("item name cannot be empty")
	ErrEmptyItemDescription = errors.New("item description cannot be empty")
	ErrItemNameTooLong      = fmt.Errorf("item name cannot exceed %d characters", MaxNameLength)
	ErrItemDescriptionTooLong = fmt.Errorf("item description cannot exceed %d characters",
		MaxDescriptionLength)
)

// Item represents a single managed record with a name and description.
// The ID is assigned by the storage layer on creation and is immutable
// afterward.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewItem creates a new Item with the given name and description.
// The ID is left zero until the store assigns one on creation.
// Returns an error if validation fails.
func NewItem(name, description string) (*Item, error) {
	item := &Item{
		Name:        name,
		Description: description,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item has valid data.
// Returns an error if any field fails validation.
func (i *Item) Validate() error {
	if err := validateName(i.Name); err != nil {
		return err
	}
	return validateDescription(i.Description)
}

// ItemPatch describes a partial update to an Item. A nil field means
// "leave the stored value unchanged"; a supplied field is subject to the
// same constraints as on creation.
type ItemPatch struct {
	Name        *string
	Description *string
}

// IsEmpty reports whether the patch supplies no fields at all.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}

// Validate checks the supplied fields of the patch.
// Returns an error if any supplied field fails validation.
func (p ItemPatch) Validate() error {
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return err
		}
	}
	return nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) < MinNameLength {
		return ErrEmptyItemName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrItemNameTooLong
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return ErrEmptyItemDescription
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrItemDescriptionTooLong
	}
	return nil
}
