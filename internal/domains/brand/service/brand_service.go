package service

import (
	"context"
	"strings"

	"pvadb-backend/internal/domains/brand"
	"pvadb-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type brandService struct {
	repo brand.Repository
}

func NewBrandService(repo brand.Repository) brand.Service {
	return &brandService{repo: repo}
}

func (s *brandService) Create(ctx context.Context, req brand.CreateBrandRequest) (*brand.BrandResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := brand.NewBrand(req.Name)
	if err != nil {
		return nil, err
	}
	if req.Website != "" {
		website := req.Website
		b.Website = &website
	}
	if req.Description != "" {
		desc := req.Description
		b.Description = &desc
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	log.Info().Str("brand_id", b.ID.String()).Str("slug", b.Slug).Msg("Brand created")

	return b.ToResponse(0), nil
}

func (s *brandService) GetBySlug(ctx context.Context, slug string) (*brand.BrandResponse, error) {
	b, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountApprovedProducts(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	return b.ToResponse(count), nil
}

func (s *brandService) List(ctx context.Context) ([]brand.BrandResponse, error) {
	brands, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]brand.BrandResponse, 0, len(brands))
	for i := range brands {
		count, err := s.repo.CountApprovedProducts(ctx, brands[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *brands[i].ToResponse(count))
	}

	return responses, nil
}

func (s *brandService) Update(ctx context.Context, id uuid.UUID, req brand.UpdateBrandRequest) (*brand.BrandResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, brand.ErrInvalidBrandName
		}
		b.Name = name
		b.Slug = utils.GenerateSlug(name)
	}
	if req.Website != nil {
		b.Website = req.Website
	}
	if req.Description != nil {
		b.Description = req.Description
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	count, err := s.repo.CountApprovedProducts(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	return b.ToResponse(count), nil
}

func (s *brandService) Delete(ctx context.Context, id uuid.UUID) error {
	hasProducts, err := s.repo.HasProducts(ctx, id)
	if err != nil {
		return err
	}
	if hasProducts {
		return brand.ErrBrandHasProducts
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("brand_id", id.String()).Msg("Brand deleted")

	return nil
}
