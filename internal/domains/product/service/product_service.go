package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"pvadb-backend/internal/domains/product"
	"pvadb-backend/internal/domains/product/model"
	"pvadb-backend/internal/domains/quota"
	"pvadb-backend/internal/infrastructure/queue"
	"pvadb-backend/internal/infrastructure/storage"
	"pvadb-backend/internal/shared"
	"pvadb-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// SubmitterDirectory resolves a submitter's contact email for moderation
// outcome notifications. Implemented by the user repository.
type SubmitterDirectory interface {
	GetEmailByID(ctx context.Context, id uuid.UUID) (string, error)
}

type productService struct {
	repo           product.Repository
	quotaSvc       quota.Service
	users          SubmitterDirectory
	minioStorage   *storage.MinIOStorage
	imageProcessor *storage.ImageProcessor
	asynqClient    queue.Enqueuer
}

func NewProductService(
	repo product.Repository,
	quotaSvc quota.Service,
	users SubmitterDirectory,
	minioStorage *storage.MinIOStorage,
	imageProcessor *storage.ImageProcessor,
	asynqClient queue.Enqueuer,
) product.Service {
	return &productService{
		repo:           repo,
		quotaSvc:       quotaSvc,
		users:          users,
		minioStorage:   minioStorage,
		imageProcessor: imageProcessor,
		asynqClient:    asynqClient,
	}
}

// Submit creates one pending submission, gated by the submitter's quota
func (s *productService) Submit(ctx context.Context, submitter product.Submitter, req *model.SubmitProductRequest) (*model.SubmissionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	decision := s.quotaSvc.CheckSubmissionLimits(ctx, submitter.UserID, submitter.IsAdmin, false, 1)
	if !decision.Allowed {
		log.Info().
			Str("user_id", submitter.UserID).
			Str("trust_level", decision.TrustLevel.String()).
			Msg("Submission rejected by quota policy")
		return nil, quota.ErrSubmissionLimitReached
	}

	var submittedBy *uuid.UUID
	if submitter.UserID != "" {
		id := utils.ParseStringToUUID(submitter.UserID)
		submittedBy = &id
	}

	p, err := model.NewProduct(req.Name, model.Category(req.Category), model.PVAStatus(req.PVAStatus), submittedBy)
	if err != nil {
		return nil, err
	}

	if req.BrandID != "" {
		brandID, err := uuid.Parse(req.BrandID)
		if err != nil {
			return nil, model.ErrBrandNotFound
		}
		exists, err := s.repo.ExistsBrand(ctx, brandID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, model.ErrBrandNotFound
		}
		p.BrandID = &brandID
	}

	if req.Barcode != "" {
		barcode := strings.TrimSpace(req.Barcode)
		p.Barcode = &barcode
	}
	if req.Description != "" {
		desc := req.Description
		p.Description = &desc
	}
	p.PVAPercentage = utils.ParseFloatToDecimal(req.PVAPercentage)
	p.Ingredients = req.Ingredients

	if err := s.ensureUniqueSlug(ctx, p); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// Record consumption only after the insert succeeded. A failed write
	// here must not undo the submission; the counter ends up under-counting
	// rather than the user losing their product.
	if submitter.UserID != "" && !submitter.IsAdmin {
		if err := s.quotaSvc.IncrementPendingCount(ctx, submitter.UserID, 1); err != nil {
			log.Error().Err(err).
				Str("user_id", submitter.UserID).
				Msg("Failed to record submission against quota")
		}
	}

	log.Info().
		Str("product_id", p.ID.String()).
		Str("user_id", submitter.UserID).
		Str("trust_level", decision.TrustLevel.String()).
		Msg("Product submission accepted")

	return &model.SubmissionResponse{
		Product:          p.ToResponse(),
		RemainingAllowed: decision.RemainingAllowed,
		TrustLevel:       decision.TrustLevel.String(),
	}, nil
}

// ensureUniqueSlug appends a short random suffix on collision
func (s *productService) ensureUniqueSlug(ctx context.Context, p *model.Product) error {
	exists, err := s.repo.ExistsBySlug(ctx, p.Slug)
	if err != nil {
		return err
	}
	if exists {
		p.Slug = fmt.Sprintf("%s-%s", p.Slug, uuid.NewString()[:8])
	}
	return nil
}

// List retrieves the public catalog: approved products only
func (s *productService) List(ctx context.Context, query model.ListProductsQuery) ([]model.ProductResponse, int64, error) {
	page, limit := utils.NormalizePage(query.Page, query.Limit)

	filter := product.ListFilter{
		Search:    strings.TrimSpace(query.Search),
		Category:  query.Category,
		PVAStatus: query.PVAStatus,
		Sort:      query.Sort,
		Offset:    (page - 1) * limit,
		Limit:     limit,
		Status:    model.StatusApproved,
	}
	if query.BrandID != "" {
		if brandID, err := uuid.Parse(query.BrandID); err == nil {
			filter.BrandID = &brandID
		}
	}

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(products), total, nil
}

// GetBySlug retrieves one approved product for the detail page
func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.ProductResponse, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return p.ToResponse(), nil
}

// ListPending retrieves the moderation queue for admins
func (s *productService) ListPending(ctx context.Context, page, limit int) ([]model.ProductResponse, int64, error) {
	page, limit = utils.NormalizePage(page, limit)

	products, total, err := s.repo.ListPending(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}

	return toResponses(products), total, nil
}

// Approve marks a pending submission approved and notifies the submitter
func (s *productService) Approve(ctx context.Context, productID, moderatorID uuid.UUID) error {
	return s.moderate(ctx, productID, moderatorID, model.StatusApproved, nil)
}

// Reject marks a pending submission rejected with mandatory feedback
func (s *productService) Reject(ctx context.Context, productID, moderatorID uuid.UUID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return model.ErrRejectionReason
	}
	return s.moderate(ctx, productID, moderatorID, model.StatusRejected, &reason)
}

func (s *productService) moderate(ctx context.Context, productID, moderatorID uuid.UUID, status model.SubmissionStatus, reason *string) error {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateModeration(ctx, productID, status, reason, moderatorID, time.Now().UTC()); err != nil {
		return err
	}

	log.Info().
		Str("product_id", productID.String()).
		Str("moderator_id", moderatorID.String()).
		Str("status", status.String()).
		Msg("Submission moderated")

	s.enqueueOutcomeEmail(ctx, p, status, reason)

	return nil
}

// enqueueOutcomeEmail dispatches the notification task. Anonymous
// submissions have nobody to notify; task failures only get logged since
// the moderation decision is already committed.
func (s *productService) enqueueOutcomeEmail(ctx context.Context, p *model.Product, status model.SubmissionStatus, reason *string) {
	if p.SubmittedBy == nil {
		return
	}

	email, err := s.users.GetEmailByID(ctx, *p.SubmittedBy)
	if err != nil || email == "" {
		log.Warn().Err(err).
			Str("product_id", p.ID.String()).
			Msg("Could not resolve submitter email, skipping outcome notification")
		return
	}

	payload := shared.ModerationOutcomePayload{
		ProductID:   p.ID.String(),
		ProductName: p.Name,
		Email:       email,
		Approved:    status == model.StatusApproved,
	}
	if reason != nil {
		payload.Reason = *reason
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal outcome email payload")
		return
	}

	task := asynq.NewTask(shared.TypeSendModerationOutcome, data)
	if _, err := s.asynqClient.Enqueue(task, asynq.Queue(shared.QueueModeration), asynq.MaxRetry(3)); err != nil {
		log.Error().Err(err).
			Str("product_id", p.ID.String()).
			Msg("Failed to enqueue outcome email")
	}
}

// UploadImage validates and stores the original, then hands variant
// generation to the worker
func (s *productService) UploadImage(ctx context.Context, productID uuid.UUID, filename string, reader io.Reader, size int64) (string, error) {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(reader, s.imageProcessor.MaxSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if err := s.imageProcessor.ValidateImage(data); err != nil {
		return "", err
	}

	objectKey := fmt.Sprintf("products/%s/original.jpg", productID)
	if _, err := s.minioStorage.Upload(ctx, objectKey, data, "image/jpeg"); err != nil {
		return "", err
	}

	if err := s.repo.UpdateImageURL(ctx, productID, objectKey); err != nil {
		return "", err
	}

	payload, _ := json.Marshal(shared.ProcessProductImagePayload{
		ProductID: productID.String(),
		ObjectKey: objectKey,
	})
	task := asynq.NewTask(shared.TypeProcessProductImage, payload)
	if _, err := s.asynqClient.Enqueue(task, asynq.Queue(shared.QueueDefault)); err != nil {
		log.Error().Err(err).
			Str("product_id", productID.String()).
			Msg("Failed to enqueue image processing")
	}

	log.Info().
		Str("product_id", productID.String()).
		Str("object_key", objectKey).
		Str("file_name", filename).
		Int64("file_size", size).
		Msg("Product image uploaded")

	return objectKey, nil
}

func toResponses(products []model.Product) []model.ProductResponse {
	responses := make([]model.ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, *products[i].ToResponse())
	}
	return responses
}
