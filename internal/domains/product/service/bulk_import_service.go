package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"pvadb-backend/internal/domains/product"
	"pvadb-backend/internal/domains/product/model"
	"pvadb-backend/internal/domains/quota"
	"pvadb-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// maxImportRows caps file size before validation even starts. The quota
// engine applies the much tighter per-tier bulk limit afterwards.
const maxImportRows = 1000

// Expected spreadsheet columns, in order
var importColumns = []string{"name", "category", "pva_status", "barcode", "pva_percentage", "description", "ingredients"}

type bulkImportService struct {
	repo     product.Repository
	quotaSvc quota.Service
}

func NewBulkImportService(repo product.Repository, quotaSvc quota.Service) product.BulkImportService {
	return &bulkImportService{
		repo:     repo,
		quotaSvc: quotaSvc,
	}
}

// ImportFromExcel parses, validates, quota-checks and inserts an .xlsx
// batch of product submissions.
func (s *bulkImportService) ImportFromExcel(ctx context.Context, submitter product.Submitter, reader io.Reader) (*model.BulkImportResult, error) {
	rows, err := s.parseFile(reader)
	if err != nil {
		return nil, err
	}

	totalRows := len(rows)
	if totalRows == 0 {
		return nil, model.ErrEmptyFile
	}
	if totalRows > maxImportRows {
		return nil, model.ErrTooManyRows
	}

	log.Info().
		Str("user_id", submitter.UserID).
		Int("total_rows", totalRows).
		Msg("Starting bulk import")

	// Validate every row before touching the database
	var submittedBy *uuid.UUID
	if submitter.UserID != "" {
		id := utils.ParseStringToUUID(submitter.UserID)
		submittedBy = &id
	}

	products := make([]*model.Product, 0, totalRows)
	validationErrors := []model.ImportValidationError{}
	seenSlugs := map[string]bool{}

	for i, row := range rows {
		// Row 1 is the header
		rowNum := i + 2

		p, rowErrs := buildImportRow(row, rowNum, submittedBy)
		if len(rowErrs) > 0 {
			validationErrors = append(validationErrors, rowErrs...)
			continue
		}

		if seenSlugs[p.Slug] {
			validationErrors = append(validationErrors, model.ImportValidationError{
				Row: rowNum, Field: "name", Error: "duplicate product name within file",
			})
			continue
		}
		seenSlugs[p.Slug] = true

		products = append(products, p)
	}

	// The whole batch counts against the bulk allowance, valid rows only
	requested := len(products)
	decision := s.quotaSvc.CheckSubmissionLimits(ctx, submitter.UserID, submitter.IsAdmin, true, requested)
	if !decision.Allowed {
		log.Info().
			Str("user_id", submitter.UserID).
			Str("trust_level", decision.TrustLevel.String()).
			Int("requested", requested).
			Msg("Bulk import rejected by quota policy")
		return nil, quota.ErrSubmissionLimitReached
	}

	for _, p := range products {
		if err := s.ensureUniqueSlug(ctx, p); err != nil {
			return nil, err
		}
	}

	if len(products) > 0 {
		if err := s.repo.CreateBatch(ctx, products); err != nil {
			return nil, err
		}
		if submitter.UserID != "" && !submitter.IsAdmin {
			if err := s.quotaSvc.IncrementPendingCount(ctx, submitter.UserID, len(products)); err != nil {
				log.Error().Err(err).
					Str("user_id", submitter.UserID).
					Msg("Failed to record bulk import against quota")
			}
		}
	}

	created := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		created = append(created, p.ID)
	}

	log.Info().
		Str("user_id", submitter.UserID).
		Int("success_rows", len(products)).
		Int("failed_rows", totalRows-len(products)).
		Msg("Bulk import finished")

	return &model.BulkImportResult{
		Success:         len(validationErrors) == 0,
		TotalRows:       totalRows,
		SuccessRows:     len(products),
		FailedRows:      totalRows - len(products),
		CreatedProducts: created,
		Errors:          validationErrors,
	}, nil
}

// parseFile returns the data rows of the first sheet, header excluded
func (s *bulkImportService) parseFile(reader io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("cannot open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, model.ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}
	if len(rows) <= 1 {
		return nil, model.ErrEmptyFile
	}

	header := rows[0]
	for i, want := range importColumns {
		if i >= len(header) || !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("unexpected column layout: want %v", importColumns)
		}
	}

	return rows[1:], nil
}

// buildImportRow maps one spreadsheet row to a product entity
func buildImportRow(row []string, rowNum int, submittedBy *uuid.UUID) (*model.Product, []model.ImportValidationError) {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	errs := []model.ImportValidationError{}

	name := col(0)
	category := model.Category(col(1))
	pvaStatus := model.PVAStatus(col(2))

	if name == "" {
		errs = append(errs, model.ImportValidationError{Row: rowNum, Field: "name", Error: "name is required"})
	}
	if !category.IsValid() {
		errs = append(errs, model.ImportValidationError{Row: rowNum, Field: "category", Error: "unknown category"})
	}
	if !pvaStatus.IsValid() {
		errs = append(errs, model.ImportValidationError{Row: rowNum, Field: "pva_status", Error: "unknown pva status"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	p, err := model.NewProduct(name, category, pvaStatus, submittedBy)
	if err != nil {
		return nil, []model.ImportValidationError{{Row: rowNum, Field: "name", Error: err.Error()}}
	}

	if barcode := col(3); barcode != "" {
		p.Barcode = &barcode
	}

	if pct := col(4); pct != "" {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil || v < 0 || v > 100 {
			return nil, []model.ImportValidationError{{Row: rowNum, Field: "pva_percentage", Error: "must be a number between 0 and 100"}}
		}
		p.PVAPercentage = utils.ParseFloatToDecimal(&v)
	}

	if desc := col(5); desc != "" {
		p.Description = &desc
	}

	if ingredients := col(6); ingredients != "" {
		parts := strings.Split(ingredients, ";")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		p.Ingredients = parts
	}

	return p, nil
}

func (s *bulkImportService) ensureUniqueSlug(ctx context.Context, p *model.Product) error {
	exists, err := s.repo.ExistsBySlug(ctx, p.Slug)
	if err != nil {
		return err
	}
	if exists {
		p.Slug = fmt.Sprintf("%s-%s", p.Slug, uuid.NewString()[:8])
	}
	return nil
}
