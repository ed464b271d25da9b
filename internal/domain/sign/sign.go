package sign

import (
	"errors"

	"github.com/google/uuid"
)

// TrafficSign is a road-sign reference entry browsed outside of exams.
type TrafficSign struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// New creates a validated traffic sign.
func New(name, category, description, imageURL string) (*TrafficSign, error) {
	if name == "" {
		return nil, errors.New("sign name cannot be empty")
	}
	if category == "" {
		return nil, errors.New("sign category cannot be empty")
	}
	if imageURL == "" {
		return nil, errors.New("sign image_url cannot be empty")
	}
	return &TrafficSign{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    category,
		Description: description,
		ImageURL:    imageURL,
	}, nil
}
