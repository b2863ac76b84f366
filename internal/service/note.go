package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"travelapi/internal/expiry"
	"travelapi/internal/model"
	"travelapi/internal/repository"
)

// MaxNoteRangeDays caps a single ListBetween query.
const MaxNoteRangeDays = 366

// NoteInput is a new calendar note.
type NoteInput struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Text string `json:"text" validate:"required,max=1000"`
}

// NoteService manages the user's calendar notes.
type NoteService interface {
	// List returns notes in [from, to]. Empty bounds default to the current month.
	List(ctx context.Context, userID, from, to string) ([]model.Note, error)
	Create(ctx context.Context, userID string, in NoteInput) (*model.Note, error)
	Delete(ctx context.Context, userID, id string) error
}

type noteService struct {
	repo  repository.NoteRepository
	clock Clock
}

func NewNoteService(repo repository.NoteRepository, clock Clock) NoteService {
	return &noteService{repo: repo, clock: clock}
}

func (s *noteService) List(ctx context.Context, userID, from, to string) ([]model.Note, error) {
	today := s.clock.Today()
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())

	start, end := first, first.AddDate(0, 1, -1)
	if from = strings.TrimSpace(from); from != "" {
		d, ok := expiry.ParseDate(from, today.Location())
		if !ok {
			return nil, invalid("from must be a date in YYYY-MM-DD format")
		}
		start = d
	}
	if to = strings.TrimSpace(to); to != "" {
		d, ok := expiry.ParseDate(to, today.Location())
		if !ok {
			return nil, invalid("to must be a date in YYYY-MM-DD format")
		}
		end = d
	}

	span := expiry.DaysBetween(start, end)
	if span < 0 {
		return nil, invalid("from must not be after to")
	}
	if span > MaxNoteRangeDays {
		return nil, invalid("date range must not exceed %d days", MaxNoteRangeDays)
	}

	notes, err := s.repo.ListBetween(ctx, userID, start.Format(expiry.DateLayout), end.Format(expiry.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (s *noteService) Create(ctx context.Context, userID string, in NoteInput) (*model.Note, error) {
	in.Date = strings.TrimSpace(in.Date)
	in.Text = plainText(in.Text)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      in.Date,
		Text:      in.Text,
		CreatedAt: s.clock.Today().UTC(),
	})
}

func (s *noteService) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("note %w", ErrNotFound)
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return notFound(err, "note")
	}
	return nil
}
