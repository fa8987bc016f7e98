package service

import (
	"context"
	"testing"

	"pvadb-backend/internal/domains/brand"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBrandRepo struct {
	brands      map[uuid.UUID]*brand.Brand
	productRefs map[uuid.UUID]int
}

func newFakeBrandRepo() *fakeBrandRepo {
	return &fakeBrandRepo{
		brands:      map[uuid.UUID]*brand.Brand{},
		productRefs: map[uuid.UUID]int{},
	}
}

func (f *fakeBrandRepo) Create(ctx context.Context, b *brand.Brand) error {
	for _, existing := range f.brands {
		if existing.Slug == b.Slug {
			return brand.ErrDuplicateSlug
		}
	}
	cp := *b
	f.brands[b.ID] = &cp
	return nil
}

func (f *fakeBrandRepo) GetByID(ctx context.Context, id uuid.UUID) (*brand.Brand, error) {
	b, ok := f.brands[id]
	if !ok {
		return nil, brand.ErrBrandNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBrandRepo) GetBySlug(ctx context.Context, slug string) (*brand.Brand, error) {
	for _, b := range f.brands {
		if b.Slug == slug {
			cp := *b
			return &cp, nil
		}
	}
	return nil, brand.ErrBrandNotFound
}

func (f *fakeBrandRepo) List(ctx context.Context) ([]brand.Brand, error) {
	out := []brand.Brand{}
	for _, b := range f.brands {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBrandRepo) Update(ctx context.Context, b *brand.Brand) error {
	if _, ok := f.brands[b.ID]; !ok {
		return brand.ErrBrandNotFound
	}
	cp := *b
	f.brands[b.ID] = &cp
	return nil
}

func (f *fakeBrandRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.brands[id]; !ok {
		return brand.ErrBrandNotFound
	}
	delete(f.brands, id)
	return nil
}

func (f *fakeBrandRepo) CountApprovedProducts(ctx context.Context, brandID uuid.UUID) (int, error) {
	return f.productRefs[brandID], nil
}

func (f *fakeBrandRepo) HasProducts(ctx context.Context, brandID uuid.UUID) (bool, error) {
	return f.productRefs[brandID] > 0, nil
}

func TestCreateBrand(t *testing.T) {
	repo := newFakeBrandRepo()
	svc := NewBrandService(repo)

	resp, err := svc.Create(context.Background(), brand.CreateBrandRequest{
		Name:    "Blue Earth Cleaning",
		Website: "https://blueearth.example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "blue-earth-cleaning", resp.Slug)
	assert.Zero(t, resp.ProductCount)
	require.NotNil(t, resp.Website)
}

func TestCreateBrand_DuplicateSlug(t *testing.T) {
	repo := newFakeBrandRepo()
	svc := NewBrandService(repo)

	_, err := svc.Create(context.Background(), brand.CreateBrandRequest{Name: "Blue Earth"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), brand.CreateBrandRequest{Name: "Blue Earth"})
	require.ErrorIs(t, err, brand.ErrDuplicateSlug)
}

func TestGetBySlug_IncludesProductCount(t *testing.T) {
	repo := newFakeBrandRepo()
	svc := NewBrandService(repo)

	resp, err := svc.Create(context.Background(), brand.CreateBrandRequest{Name: "Blue Earth"})
	require.NoError(t, err)
	repo.productRefs[resp.ID] = 7

	got, err := svc.GetBySlug(context.Background(), "blue-earth")

	require.NoError(t, err)
	assert.Equal(t, 7, got.ProductCount)
}

func TestUpdateBrand_RenameRegeneratesSlug(t *testing.T) {
	repo := newFakeBrandRepo()
	svc := NewBrandService(repo)

	created, err := svc.Create(context.Background(), brand.CreateBrandRequest{Name: "Blue Earth"})
	require.NoError(t, err)

	name := "Green Earth"
	updated, err := svc.Update(context.Background(), created.ID, brand.UpdateBrandRequest{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "Green Earth", updated.Name)
	assert.Equal(t, "green-earth", updated.Slug)
}

func TestDeleteBrand_RefusedWhileReferenced(t *testing.T) {
	repo := newFakeBrandRepo()
	svc := NewBrandService(repo)

	created, err := svc.Create(context.Background(), brand.CreateBrandRequest{Name: "Blue Earth"})
	require.NoError(t, err)
	repo.productRefs[created.ID] = 1

	err = svc.Delete(context.Background(), created.ID)
	require.ErrorIs(t, err, brand.ErrBrandHasProducts)

	repo.productRefs[created.ID] = 0
	require.NoError(t, svc.Delete(context.Background(), created.ID))
}
