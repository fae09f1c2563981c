// Package merge applies JSON-merge-patch style partial updates. A patch
// struct mirrors its entity with every field behind a pointer; nil means
// "leave the existing value alone". Apply functions return a new value
// and never mutate their input, so callers can still diff old against new.
package merge

import "rentmarket-backend/internal/domain"

// ProductPatch is a partial update for a product. Rents is included
// because the stored record carries them, but handlers normally do not
// expose it; a present Tags or Rents slice replaces the whole list.
type ProductPatch struct {
	Title        *string           `json:"title,omitempty"`
	Description  *string           `json:"description,omitempty"`
	Tags         *[]string         `json:"tags,omitempty"`
	Price        *float64          `json:"price,omitempty"`
	Address      *domain.Address   `json:"address,omitempty"`
	Availability *domain.DateRange `json:"availability,omitempty"`
	Rents        *[]domain.Rent    `json:"rents,omitempty"`
}

// ApplyProduct merges patch onto existing and returns the result.
func ApplyProduct(existing domain.Product, patch ProductPatch) domain.Product {
	merged := existing
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Tags != nil {
		merged.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.Address != nil {
		merged.Address = *patch.Address
	}
	if patch.Availability != nil {
		merged.Availability = *patch.Availability
	}
	if patch.Rents != nil {
		merged.Rents = append([]domain.Rent(nil), (*patch.Rents)...)
	}
	return merged
}

// UserPatch is a partial update for a user profile.
type UserPatch struct {
	Email      *string  `json:"email,omitempty"`
	FirstName  *string  `json:"firstName,omitempty"`
	LastName   *string  `json:"lastName,omitempty"`
	Street     *string  `json:"street,omitempty"`
	City       *string  `json:"city,omitempty"`
	PostalCode *string  `json:"postalCode,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
}

// ApplyUser merges patch onto existing and returns the result.
func ApplyUser(existing domain.User, patch UserPatch) domain.User {
	merged := existing
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.FirstName != nil {
		merged.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		merged.LastName = *patch.LastName
	}
	if patch.Street != nil {
		merged.Street = *patch.Street
	}
	if patch.City != nil {
		merged.City = *patch.City
	}
	if patch.PostalCode != nil {
		merged.PostalCode = *patch.PostalCode
	}
	if patch.Rating != nil {
		merged.Rating = *patch.Rating
	}
	return merged
}
