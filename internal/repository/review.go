package repository

import (
	"context"

	"travelapi/internal/model"
)

// ReviewFilter narrows the review feed. An empty Destination matches everything.
type ReviewFilter struct {
	Destination string
	PageQuery
}

// ReviewPage is a page of reviews plus the average rating over the whole filter.
type ReviewPage struct {
	PageResult[model.Review]
	AverageRating float64
}

// ReviewRepository persists the travel_reviews feed.
type ReviewRepository interface {
	Create(ctx context.Context, r *model.Review) (*model.Review, error)
	List(ctx context.Context, f ReviewFilter) (*ReviewPage, error)
}

// NoteRepository persists calendar notes, scoped to the owner.
type NoteRepository interface {
	Create(ctx context.Context, n *model.Note) (*model.Note, error)
	// ListBetween returns notes dated within [from, to], both YYYY-MM-DD, ordered by date.
	ListBetween(ctx context.Context, userID, from, to string) ([]model.Note, error)
	Delete(ctx context.Context, userID, id string) error
}

// VisaRepository reads the visa_requirements reference table.
type VisaRepository interface {
	Find(ctx context.Context, passport, destination string) (*model.VisaRequirement, error)
}
