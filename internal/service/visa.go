package service

import (
	"context"
	"strings"
	"time"

	"travelapi/internal/cache"
	"travelapi/internal/model"
	"travelapi/internal/repository"
)

// VisaQuery identifies a passport/destination pair by ISO 3166-1 alpha-2 codes.
type VisaQuery struct {
	From string `json:"from" validate:"required,len=2,alpha"`
	To   string `json:"to" validate:"required,len=2,alpha"`
}

// VisaService looks up entry requirements.
type VisaService interface {
	Lookup(ctx context.Context, from, to string) (*model.VisaRequirement, error)
}

type visaService struct {
	repo  repository.VisaRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewVisaService reads through c (entries kept for ttl) in front of repo.
func NewVisaService(repo repository.VisaRepository, c cache.Cache, ttl time.Duration) VisaService {
	return &visaService{repo: repo, cache: c, ttl: ttl}
}

func (s *visaService) Lookup(ctx context.Context, from, to string) (*model.VisaRequirement, error) {
	q := VisaQuery{
		From: strings.ToUpper(strings.TrimSpace(from)),
		To:   strings.ToUpper(strings.TrimSpace(to)),
	}
	if err := validateStruct(q); err != nil {
		return nil, err
	}

	if q.From == q.To {
		return &model.VisaRequirement{
			PassportCountry:    q.From,
			DestinationCountry: q.To,
			Requirement:        model.VisaFree,
		}, nil
	}

	key := "visa:" + q.From + ":" + q.To
	var cached model.VisaRequirement
	// a cache outage only costs a database read
	if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	req, err := s.repo.Find(ctx, q.From, q.To)
	if err != nil {
		return nil, notFound(err, "visa requirement")
	}
	_ = s.cache.Set(ctx, key, req, s.ttl)
	return req, nil
}
