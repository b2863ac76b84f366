package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"travelapi/internal/model"
	"travelapi/internal/repository"
)

const anonymousAuthor = "Traveler"

// ReviewInput is a new entry for the public feed.
type ReviewInput struct {
	Destination string `json:"destination" validate:"required,max=120"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Comment     string `json:"comment" validate:"max=2000"`
}

// ReviewListResult is a page of the feed plus the average rating of everything matching the filter.
type ReviewListResult struct {
	Items         []model.Review `json:"data"`
	Total         int            `json:"total"`
	AverageRating float64        `json:"average_rating"`
}

// ReviewService serves the travel review feed.
type ReviewService interface {
	List(ctx context.Context, destination string, limit, offset int) (*ReviewListResult, error)
	Create(ctx context.Context, userID string, in ReviewInput) (*model.Review, error)
}

type reviewService struct {
	reviews  repository.ReviewRepository
	profiles repository.ProfileRepository
	clock    Clock
}

func NewReviewService(reviews repository.ReviewRepository, profiles repository.ProfileRepository, clock Clock) ReviewService {
	return &reviewService{reviews: reviews, profiles: profiles, clock: clock}
}

func (s *reviewService) List(ctx context.Context, destination string, limit, offset int) (*ReviewListResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	page, err := s.reviews.List(ctx, repository.ReviewFilter{
		Destination: strings.TrimSpace(destination),
		PageQuery:   repository.PageQuery{Limit: limit, Offset: offset},
	})
	if err != nil {
		return nil, err
	}
	return &ReviewListResult{Items: page.Items, Total: page.Total, AverageRating: page.AverageRating}, nil
}

func (s *reviewService) Create(ctx context.Context, userID string, in ReviewInput) (*model.Review, error) {
	in.Destination = plainText(in.Destination)
	in.Comment = plainText(in.Comment)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	author := anonymousAuthor
	p, err := s.profiles.FindByID(ctx, userID)
	switch {
	case err == nil:
		if name := p.DisplayName(); name != "" {
			author = name
		}
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("load profile: %w", err)
	}

	return s.reviews.Create(ctx, &model.Review{
		ID:          uuid.NewString(),
		UserID:      userID,
		AuthorName:  author,
		Destination: in.Destination,
		Rating:      in.Rating,
		Comment:     in.Comment,
		CreatedAt:   s.clock.Today().UTC(),
	})
}
