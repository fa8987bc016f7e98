package job

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"pvadb-backend/internal/infrastructure/storage"
	"pvadb-backend/internal/shared"
)

// ProcessImageHandler generates the resized display variants for an
// uploaded product image. Runs in the worker so uploads stay fast.
type ProcessImageHandler struct {
	minioStorage   *storage.MinIOStorage
	imageProcessor *storage.ImageProcessor
}

func NewProcessImageHandler(minioStorage *storage.MinIOStorage, imageProcessor *storage.ImageProcessor) *ProcessImageHandler {
	return &ProcessImageHandler{
		minioStorage:   minioStorage,
		imageProcessor: imageProcessor,
	}
}

func (h *ProcessImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessProductImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal image processing payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	data, err := h.minioStorage.Download(ctx, payload.ObjectKey)
	if err != nil {
		return fmt.Errorf("download original: %w", err)
	}

	variants, err := h.imageProcessor.ProcessImage(data)
	if err != nil {
		// A broken original never becomes processable; do not retry
		log.Error().Err(err).
			Str("product_id", payload.ProductID).
			Msg("Cannot process image, dropping task")
		return nil
	}

	dir := path.Dir(payload.ObjectKey)
	for name, content := range variants {
		key := fmt.Sprintf("%s/%s.jpg", dir, name)
		if _, err := h.minioStorage.Upload(ctx, key, content, "image/jpeg"); err != nil {
			return fmt.Errorf("upload %s variant: %w", name, err)
		}
	}

	log.Info().
		Str("product_id", payload.ProductID).
		Int("variants", len(variants)).
		Str("base", strings.TrimSuffix(dir, "/")).
		Msg("Image variants generated")

	return nil
}
