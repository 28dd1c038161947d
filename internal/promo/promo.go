package promo

import (
	"context"
	"errors"
	"net/url"

	"github.com/team33/casino-gateway/internal/adminapi"
	"github.com/team33/casino-gateway/internal/models"
)

// Service is a thin pass-through over the promotions endpoint. No local
// state.
type Service struct {
	client *adminapi.Client
}

func NewService(client *adminapi.Client) *Service {
	return &Service{client: client}
}

// List fetches promotions, optionally filtered by category
func (s *Service) List(ctx context.Context, category string) ([]models.Promotion, error) {
	path := "/promotions"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	res := s.client.Get(ctx, path)
	if !res.Success {
		return nil, errors.New(res.Message)
	}
	var promotions []models.Promotion
	if err := res.Decode(&promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Promotion, error) {
	if id == "" {
		return nil, errors.New("promotion id required")
	}
	res := s.client.Get(ctx, "/promotions/"+url.PathEscape(id))
	if !res.Success {
		return nil, errors.New(res.Message)
	}
	var promotion models.Promotion
	if err := res.Decode(&promotion); err != nil {
		return nil, err
	}
	return &promotion, nil
}

// Claim posts a claim with no body
func (s *Service) Claim(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("promotion id required")
	}
	res := s.client.Post(ctx, "/promotions/"+url.PathEscape(id)+"/claim", nil)
	if !res.Success {
		return errors.New(res.Message)
	}
	return nil
}
