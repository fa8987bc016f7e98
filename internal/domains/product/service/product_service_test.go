package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pvadb-backend/internal/domains/product"
	"pvadb-backend/internal/domains/product/model"
	"pvadb-backend/internal/domains/quota"
	"pvadb-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory product.Repository
type fakeRepo struct {
	products map[uuid.UUID]*model.Product
	slugs    map[string]bool
	brands   map[uuid.UUID]bool

	createErr error
	batchErr  error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: map[uuid.UUID]*model.Product{},
		slugs:    map[string]bool{},
		brands:   map[uuid.UUID]bool{},
	}
}

func (f *fakeRepo) Create(ctx context.Context, p *model.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.slugs[p.Slug] {
		return model.ErrDuplicateSlug
	}
	cp := *p
	f.products[p.ID] = &cp
	f.slugs[p.Slug] = true
	return nil
}

func (f *fakeRepo) CreateBatch(ctx context.Context, products []*model.Product) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	for _, p := range products {
		if err := f.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug && p.Status == model.StatusApproved {
			cp := *p
			return &cp, nil
		}
	}
	return nil, model.ErrProductNotFound
}

func (f *fakeRepo) List(ctx context.Context, filter product.ListFilter) ([]model.Product, int64, error) {
	out := []model.Product{}
	for _, p := range f.products {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) ListPending(ctx context.Context, offset, limit int) ([]model.Product, int64, error) {
	out := []model.Product{}
	for _, p := range f.products {
		if p.Status == model.StatusPending {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) PendingStats(ctx context.Context) (*model.PendingStats, error) {
	stats := &model.PendingStats{}
	for _, p := range f.products {
		if p.Status == model.StatusPending {
			stats.PendingCount++
		}
	}
	return stats, nil
}

func (f *fakeRepo) UpdateModeration(ctx context.Context, id uuid.UUID, status model.SubmissionStatus, reason *string, moderatedBy uuid.UUID, moderatedAt time.Time) error {
	p, ok := f.products[id]
	if !ok {
		return model.ErrProductNotFound
	}
	if p.Status != model.StatusPending {
		return model.ErrAlreadyModerated
	}
	p.Status = status
	p.RejectionReason = reason
	p.ModeratedBy = &moderatedBy
	p.ModeratedAt = &moderatedAt
	return nil
}

func (f *fakeRepo) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	p, ok := f.products[id]
	if !ok {
		return model.ErrProductNotFound
	}
	p.ImageURL = &imageURL
	return nil
}

func (f *fakeRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	return f.slugs[slug], nil
}

func (f *fakeRepo) ExistsBrand(ctx context.Context, brandID uuid.UUID) (bool, error) {
	return f.brands[brandID], nil
}

// fakeQuota scripts the decision and records consumption
type fakeQuota struct {
	decision   quota.Decision
	increments map[string]int
	checks     int
}

func newFakeQuota(allowed bool) *fakeQuota {
	return &fakeQuota{
		decision: quota.Decision{
			Allowed:          allowed,
			RemainingAllowed: 2,
			MaxAllowed:       3,
			TrustLevel:       quota.TrustLevelNew,
		},
		increments: map[string]int{},
	}
}

func (f *fakeQuota) ResolveTrustLevel(ctx context.Context, userID string) quota.TrustLevel {
	return f.decision.TrustLevel
}

func (f *fakeQuota) CheckSubmissionLimits(ctx context.Context, userID string, isAdmin, isBulkUpload bool, requestedCount int) quota.Decision {
	f.checks++
	return f.decision
}

func (f *fakeQuota) GetPendingCount(ctx context.Context, userID string) int {
	return f.increments[userID]
}

func (f *fakeQuota) IncrementPendingCount(ctx context.Context, userID string, delta int) error {
	f.increments[userID] += delta
	return nil
}

// fakeDirectory maps submitter IDs to emails
type fakeDirectory struct {
	emails map[uuid.UUID]string
	err    error
}

func (f *fakeDirectory) GetEmailByID(ctx context.Context, id uuid.UUID) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.emails[id], nil
}

// fakeEnqueuer records dispatched tasks
type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func newService(repo *fakeRepo, q *fakeQuota, dir *fakeDirectory, enq *fakeEnqueuer) product.Service {
	if dir == nil {
		dir = &fakeDirectory{emails: map[uuid.UUID]string{}}
	}
	if enq == nil {
		enq = &fakeEnqueuer{}
	}
	return NewProductService(repo, q, dir, nil, nil, enq)
}

func validRequest() *model.SubmitProductRequest {
	return &model.SubmitProductRequest{
		Name:      "Eco Laundry Sheets",
		Category:  "laundry",
		PVAStatus: "contains",
	}
}

func TestSubmit_AcceptedAndCounted(t *testing.T) {
	repo := newFakeRepo()
	q := newFakeQuota(true)
	svc := newService(repo, q, nil, nil)
	userID := uuid.NewString()

	resp, err := svc.Submit(context.Background(), product.Submitter{UserID: userID}, validRequest())

	require.NoError(t, err)
	require.NotNil(t, resp.Product)
	assert.Equal(t, "pending", resp.Product.Status)
	assert.Equal(t, "eco-laundry-sheets", resp.Product.Slug)
	assert.Equal(t, quota.Limit(2), resp.RemainingAllowed)
	assert.Equal(t, "new", resp.TrustLevel)
	assert.Equal(t, 1, q.increments[userID], "accepted submission must be recorded")
	assert.Len(t, repo.products, 1)
}

func TestSubmit_QuotaDenied(t *testing.T) {
	repo := newFakeRepo()
	q := newFakeQuota(false)
	svc := newService(repo, q, nil, nil)
	userID := uuid.NewString()

	_, err := svc.Submit(context.Background(), product.Submitter{UserID: userID}, validRequest())

	require.ErrorIs(t, err, quota.ErrSubmissionLimitReached)
	assert.Empty(t, repo.products, "denied submission must not be persisted")
	assert.Zero(t, q.increments[userID], "denied submission must not be counted")
}

func TestSubmit_AnonymousNotCounted(t *testing.T) {
	repo := newFakeRepo()
	q := newFakeQuota(true)
	svc := newService(repo, q, nil, nil)

	resp, err := svc.Submit(context.Background(), product.Submitter{}, validRequest())

	require.NoError(t, err)
	assert.Nil(t, resp.Product.BrandID)
	assert.Empty(t, q.increments, "anonymous submissions have no counter identity")
}

func TestSubmit_AdminNotCounted(t *testing.T) {
	repo := newFakeRepo()
	q := newFakeQuota(true)
	svc := newService(repo, q, nil, nil)
	userID := uuid.NewString()

	_, err := svc.Submit(context.Background(), product.Submitter{UserID: userID, IsAdmin: true}, validRequest())

	require.NoError(t, err)
	assert.Zero(t, q.increments[userID], "admin submissions bypass the quota ledger")
}

func TestSubmit_ValidationFailure(t *testing.T) {
	repo := newFakeRepo()
	q := newFakeQuota(true)
	svc := newService(repo, q, nil, nil)

	req := validRequest()
	req.Category = "explosives"

	_, err := svc.Submit(context.Background(), product.Submitter{}, req)

	require.Error(t, err)
	assert.Zero(t, q.checks, "invalid payloads are rejected before the quota check")
}

func TestSubmit_UnknownBrand(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, newFakeQuota(true), nil, nil)

	req := validRequest()
	req.BrandID = uuid.NewString()

	_, err := svc.Submit(context.Background(), product.Submitter{}, req)

	require.ErrorIs(t, err, model.ErrBrandNotFound)
}

func TestSubmit_SlugCollisionGetsSuffix(t *testing.T) {
	repo := newFakeRepo()
	repo.slugs["eco-laundry-sheets"] = true
	svc := newService(repo, newFakeQuota(true), nil, nil)

	resp, err := svc.Submit(context.Background(), product.Submitter{}, validRequest())

	require.NoError(t, err)
	assert.NotEqual(t, "eco-laundry-sheets", resp.Product.Slug)
	assert.Contains(t, resp.Product.Slug, "eco-laundry-sheets-")
}

func seedPending(t *testing.T, repo *fakeRepo, submittedBy *uuid.UUID) *model.Product {
	t.Helper()
	p, err := model.NewProduct("Dish Pods", model.CategoryDishwasher, model.PVAStatusContains, submittedBy)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestApprove_EnqueuesOutcomeEmail(t *testing.T) {
	repo := newFakeRepo()
	submitter := uuid.New()
	p := seedPending(t, repo, &submitter)

	dir := &fakeDirectory{emails: map[uuid.UUID]string{submitter: "sam@example.com"}}
	enq := &fakeEnqueuer{}
	svc := newService(repo, newFakeQuota(true), dir, enq)

	err := svc.Approve(context.Background(), p.ID, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, repo.products[p.ID].Status)

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, shared.TypeSendModerationOutcome, enq.tasks[0].Type())

	var payload shared.ModerationOutcomePayload
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &payload))
	assert.True(t, payload.Approved)
	assert.Equal(t, "sam@example.com", payload.Email)
	assert.Equal(t, "Dish Pods", payload.ProductName)
}

func TestReject_RequiresReason(t *testing.T) {
	repo := newFakeRepo()
	p := seedPending(t, repo, nil)
	svc := newService(repo, newFakeQuota(true), nil, nil)

	err := svc.Reject(context.Background(), p.ID, uuid.New(), "   ")

	require.ErrorIs(t, err, model.ErrRejectionReason)
	assert.Equal(t, model.StatusPending, repo.products[p.ID].Status)
}

func TestReject_StoresReasonAndNotifies(t *testing.T) {
	repo := newFakeRepo()
	submitter := uuid.New()
	p := seedPending(t, repo, &submitter)

	dir := &fakeDirectory{emails: map[uuid.UUID]string{submitter: "sam@example.com"}}
	enq := &fakeEnqueuer{}
	svc := newService(repo, newFakeQuota(true), dir, enq)

	err := svc.Reject(context.Background(), p.ID, uuid.New(), "blurry photo, cannot verify ingredients")

	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, repo.products[p.ID].Status)
	require.NotNil(t, repo.products[p.ID].RejectionReason)

	var payload shared.ModerationOutcomePayload
	require.Len(t, enq.tasks, 1)
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &payload))
	assert.False(t, payload.Approved)
	assert.Equal(t, "blurry photo, cannot verify ingredients", payload.Reason)
}

func TestModerate_AlreadyModerated(t *testing.T) {
	repo := newFakeRepo()
	p := seedPending(t, repo, nil)
	svc := newService(repo, newFakeQuota(true), nil, nil)

	require.NoError(t, svc.Approve(context.Background(), p.ID, uuid.New()))

	err := svc.Approve(context.Background(), p.ID, uuid.New())
	require.ErrorIs(t, err, model.ErrAlreadyModerated)

	err = svc.Reject(context.Background(), p.ID, uuid.New(), "too late")
	require.ErrorIs(t, err, model.ErrAlreadyModerated)
}

func TestModerate_AnonymousSubmissionSkipsEmail(t *testing.T) {
	repo := newFakeRepo()
	p := seedPending(t, repo, nil)
	enq := &fakeEnqueuer{}
	svc := newService(repo, newFakeQuota(true), nil, enq)

	require.NoError(t, svc.Approve(context.Background(), p.ID, uuid.New()))

	assert.Empty(t, enq.tasks, "nobody to notify for anonymous submissions")
}

func TestModerate_EmailLookupFailureDoesNotFailModeration(t *testing.T) {
	repo := newFakeRepo()
	submitter := uuid.New()
	p := seedPending(t, repo, &submitter)

	dir := &fakeDirectory{err: errors.New("users table unavailable")}
	enq := &fakeEnqueuer{}
	svc := newService(repo, newFakeQuota(true), dir, enq)

	err := svc.Approve(context.Background(), p.ID, uuid.New())

	require.NoError(t, err, "notification trouble must not undo the decision")
	assert.Equal(t, model.StatusApproved, repo.products[p.ID].Status)
	assert.Empty(t, enq.tasks)
}

func TestGetBySlug_OnlyApproved(t *testing.T) {
	repo := newFakeRepo()
	p := seedPending(t, repo, nil)
	svc := newService(repo, newFakeQuota(true), nil, nil)

	_, err := svc.GetBySlug(context.Background(), p.Slug)
	require.ErrorIs(t, err, model.ErrProductNotFound)

	require.NoError(t, svc.Approve(context.Background(), p.ID, uuid.New()))

	resp, err := svc.GetBySlug(context.Background(), p.Slug)
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
}
