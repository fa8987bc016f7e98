package service

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"pvadb-backend/internal/domains/product"
	"pvadb-backend/internal/domains/product/model"
	"pvadb-backend/internal/domains/quota"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildImportFile(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := []interface{}{"name", "category", "pva_status", "barcode", "pva_percentage", "description", "ingredients"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportFromExcel_ValidFile(t *testing.T) {
	repo := newFakeRepo()
	q := newFakeQuota(true)
	svc := NewBulkImportService(repo, q)
	userID := "3e89a2c1-0bb5-4c85-9d2a-5f6f1de2af01"

	file := buildImportFile(t, [][]interface{}{
		{"Pod Wash Ultra", "laundry", "contains", "0123456789", "35.5", "Concentrated pods", "PVA; surfactant; fragrance"},
		{"Plain Soap Bar", "personal_care", "free", "", "", "", ""},
	})

	result, err := svc.ImportFromExcel(context.Background(), product.Submitter{UserID: userID}, file)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.SuccessRows)
	assert.Zero(t, result.FailedRows)
	assert.Len(t, result.CreatedProducts, 2)
	assert.Len(t, repo.products, 2)
	assert.Equal(t, 2, q.increments[userID], "all accepted rows count against the quota")

	for _, p := range repo.products {
		assert.Equal(t, model.StatusPending, p.Status, "imported rows still need moderation")
	}
}

func TestImportFromExcel_QuotaDenied(t *testing.T) {
	repo := newFakeRepo()
	q := newFakeQuota(false)
	svc := NewBulkImportService(repo, q)

	file := buildImportFile(t, [][]interface{}{
		{"Pod Wash Ultra", "laundry", "contains", "", "", "", ""},
	})

	_, err := svc.ImportFromExcel(context.Background(), product.Submitter{UserID: "user-1"}, file)

	require.ErrorIs(t, err, quota.ErrSubmissionLimitReached)
	assert.Empty(t, repo.products, "denied batch must not be persisted")
	assert.Empty(t, q.increments)
}

func TestImportFromExcel_InvalidRowsReported(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBulkImportService(repo, newFakeQuota(true))

	file := buildImportFile(t, [][]interface{}{
		{"Good Row", "laundry", "contains", "", "", "", ""},
		{"", "laundry", "contains", "", "", "", ""},
		{"Bad Category", "weapons", "contains", "", "", "", ""},
		{"Bad Percentage", "cleaning", "unknown", "", "250", "", ""},
	})

	result, err := svc.ImportFromExcel(context.Background(), product.Submitter{}, file)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 1, result.SuccessRows)
	assert.Equal(t, 3, result.FailedRows)
	require.Len(t, result.Errors, 3)

	// Row numbers are 1-based spreadsheet rows, header included
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, "name", result.Errors[0].Field)
	assert.Equal(t, 4, result.Errors[1].Row)
	assert.Equal(t, "category", result.Errors[1].Field)
	assert.Equal(t, 5, result.Errors[2].Row)
	assert.Equal(t, "pva_percentage", result.Errors[2].Field)
}

func TestImportFromExcel_DuplicateNamesWithinFile(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBulkImportService(repo, newFakeQuota(true))

	file := buildImportFile(t, [][]interface{}{
		{"Pod Wash Ultra", "laundry", "contains", "", "", "", ""},
		{"Pod Wash Ultra", "laundry", "contains", "", "", "", ""},
	})

	result, err := svc.ImportFromExcel(context.Background(), product.Submitter{}, file)

	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessRows)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Error, "duplicate")
}

func TestImportFromExcel_EmptyFile(t *testing.T) {
	svc := NewBulkImportService(newFakeRepo(), newFakeQuota(true))

	file := buildImportFile(t, nil)

	_, err := svc.ImportFromExcel(context.Background(), product.Submitter{}, file)

	require.ErrorIs(t, err, model.ErrEmptyFile)
}

func TestImportFromExcel_WrongHeader(t *testing.T) {
	svc := NewBulkImportService(newFakeRepo(), newFakeQuota(true))

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"title", "type"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"Pod Wash", "laundry"}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = svc.ImportFromExcel(context.Background(), product.Submitter{}, buf)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "column layout")
}

func TestImportFromExcel_IngredientsSplit(t *testing.T) {
	repo := newFakeRepo()
	svc := NewBulkImportService(repo, newFakeQuota(true))

	file := buildImportFile(t, [][]interface{}{
		{"Pod Wash Ultra", "laundry", "contains", "", "", "", "PVA ; water;  citric acid"},
	})

	_, err := svc.ImportFromExcel(context.Background(), product.Submitter{}, file)
	require.NoError(t, err)

	require.Len(t, repo.products, 1)
	for _, p := range repo.products {
		assert.Equal(t, []string{"PVA", "water", "citric acid"}, []string(p.Ingredients))
	}
}
