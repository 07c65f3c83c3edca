package costbasis_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appcost "github.com/jhoicas/hpp-api/internal/application/costbasis"
	"github.com/jhoicas/hpp-api/internal/application/dto"
	"github.com/jhoicas/hpp-api/internal/domain"
	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/pkg/logger"
)

type ingestionFixture struct {
	catalog     *mockCatalog
	store       *mockStore
	invalidator *mockInvalidator
	decoder     *mockDecoder
	template    *mockTemplate
	uc          *appcost.IngestionUseCase
}

func newIngestionFixture() *ingestionFixture {
	f := &ingestionFixture{
		catalog:     new(mockCatalog),
		store:       new(mockStore),
		invalidator: new(mockInvalidator),
		decoder:     new(mockDecoder),
		template:    new(mockTemplate),
	}
	f.catalog.On("ListSkus", mock.Anything, testShop).Return(testIndex().ListSkus(), nil)
	f.uc = appcost.NewIngestionUseCase(f.catalog, f.invalidator, f.decoder, f.template,
		appcost.NewSubmitUseCase(f.store, logger.Nop()), logger.Nop())
	return f
}

func sheetRow(idx int, sku, hpp string) entity.SheetRow {
	return entity.SheetRow{Index: idx, Cells: map[string]string{"sku": sku, "new hpp": hpp}}
}

func TestListSkus_FilterIsAView(t *testing.T) {
	f := newIngestionFixture()

	res, err := f.uc.ListSkus(context.Background(), testShop, dto.SkuListRequest{Q: "celana"})

	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "B2", res.Data[0].SKU)
	assert.True(t, res.Data[0].HasHPP)
	assert.Equal(t, 1, res.SkusWithoutHpp, "el conteo usa el catálogo completo")
}

func TestWriteTemplate_PassesFilteredRecords(t *testing.T) {
	f := newIngestionFixture()
	var buf bytes.Buffer
	f.template.On("WriteTemplate", &buf, mock.MatchedBy(func(r []entity.SkuRecord) bool {
		return len(r) == 2
	})).Return(nil).Once()

	require.NoError(t, f.uc.WriteTemplate(context.Background(), testShop, dto.SkuListRequest{}, &buf))
	f.template.AssertExpectations(t)
}

func TestUpload_PreviewDoesNotSubmit(t *testing.T) {
	f := newIngestionFixture()
	body := strings.NewReader("x")
	f.decoder.On("Decode", "hpp.xlsx", body).Return([]entity.SheetRow{
		sheetRow(2, "A1", "10000"),
		sheetRow(3, "", "5000"),
		sheetRow(4, "B2", "-3"),
		sheetRow(5, "NEW-9", "700"),
	}, nil)

	res, err := f.uc.Upload(context.Background(), testShop, "hpp.xlsx", body, dto.HPPUploadRequest{})

	require.NoError(t, err)
	assert.Equal(t, 2, res.Ingested)
	assert.Equal(t, 1, res.Skipped["missing_sku"])
	assert.Equal(t, 1, res.Skipped["negative"])
	require.Len(t, res.Pending, 2)
	assert.Equal(t, "A1", res.Pending[0].SKU)
	assert.True(t, res.Pending[0].Known)
	assert.Equal(t, "Kaos Polos", res.Pending[0].ItemName)
	assert.Equal(t, "NEW-9", res.Pending[1].SKU)
	assert.False(t, res.Pending[1].Known, "SKU desconocido se marca pero se conserva")
	assert.Nil(t, res.Result)
	f.store.AssertNotCalled(t, "BulkUpdateHPP", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpload_ParseErrorFailsWholeUpload(t *testing.T) {
	f := newIngestionFixture()
	body := strings.NewReader("basura")
	f.decoder.On("Decode", "x.xlsx", body).Return(nil, errors.New("zip: not a valid zip file"))

	_, err := f.uc.Upload(context.Background(), testShop, "x.xlsx", body, dto.HPPUploadRequest{})

	var perr *domain.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "x.xlsx", perr.Filename)
	assert.ErrorIs(t, err, domain.ErrUnreadableSheet)
}

func TestUpload_SubmitInvalidatesCatalog(t *testing.T) {
	f := newIngestionFixture()
	body := strings.NewReader("x")
	f.decoder.On("Decode", "hpp.csv", body).Return([]entity.SheetRow{sheetRow(2, "A1", "12500.50")}, nil)
	f.store.On("BulkUpdateHPP", mock.Anything, testShop, mock.MatchedBy(func(b entity.CostBasisBatch) bool {
		return len(b.Items) == 1 && b.Items[0].HPP.Equal(decimal.RequireFromString("12500.5")) && b.Notes == "maret"
	})).Return(&entity.BatchResult{Success: true, Updated: 1}, nil).Once()
	f.invalidator.On("Invalidate", mock.Anything, testShop).Return(nil).Once()

	res, err := f.uc.Upload(context.Background(), testShop, "hpp.csv", body, dto.HPPUploadRequest{Submit: true, Notes: "maret"})

	require.NoError(t, err)
	require.NotNil(t, res.Result)
	assert.True(t, res.Result.Success)
	assert.Equal(t, 1, res.Result.Updated)
	f.store.AssertExpectations(t)
	f.invalidator.AssertExpectations(t)
}

func TestBulkUpdate_DiscardsInvalidValues(t *testing.T) {
	f := newIngestionFixture()
	f.store.On("BulkUpdateHPP", mock.Anything, testShop, mock.MatchedBy(func(b entity.CostBasisBatch) bool {
		return len(b.Items) == 1 && b.Items[0].SKU == "A1"
	})).Return(&entity.BatchResult{Success: true}, nil).Once()
	f.invalidator.On("Invalidate", mock.Anything, testShop).Return(errors.New("redis caído")).Once()

	res, err := f.uc.BulkUpdate(context.Background(), testShop, dto.BulkUpdateHPPRequest{Items: []dto.BulkUpdateHPPItem{
		{SKU: "A1", HPP: "15000"},
		{SKU: "B2", HPP: "abc"},
	}})

	require.NoError(t, err, "un fallo al invalidar la caché no revierte el envío")
	assert.True(t, res.Success)
	require.Len(t, res.Discarded, 1)
	assert.Equal(t, "B2", res.Discarded[0].SKU)
	assert.Equal(t, domain.ErrNotNumeric.Error(), res.Discarded[0].Reason)
}

func TestBulkUpdate_AllInvalidIsNothingToSubmit(t *testing.T) {
	f := newIngestionFixture()

	_, err := f.uc.BulkUpdate(context.Background(), testShop, dto.BulkUpdateHPPRequest{Items: []dto.BulkUpdateHPPItem{
		{SKU: "A1", HPP: "-1"},
	}})

	assert.ErrorIs(t, err, domain.ErrNothingToSubmit)
	f.invalidator.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}
