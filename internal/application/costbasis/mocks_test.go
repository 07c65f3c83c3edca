package costbasis_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) BulkUpdateHPP(ctx context.Context, shopID string, batch entity.CostBasisBatch) (*entity.BatchResult, error) {
	args := m.Called(ctx, shopID, batch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BatchResult), args.Error(1)
}

type mockCatalog struct{ mock.Mock }

func (m *mockCatalog) ListSkus(ctx context.Context, shopID string) ([]entity.SkuRecord, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SkuRecord), args.Error(1)
}

type mockInvalidator struct{ mock.Mock }

func (m *mockInvalidator) Invalidate(ctx context.Context, shopID string) error {
	return m.Called(ctx, shopID).Error(0)
}

type mockDecoder struct{ mock.Mock }

func (m *mockDecoder) Decode(filename string, r io.Reader) ([]entity.SheetRow, error) {
	args := m.Called(filename, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SheetRow), args.Error(1)
}

type mockTemplate struct{ mock.Mock }

func (m *mockTemplate) WriteTemplate(w io.Writer, records []entity.SkuRecord) error {
	return m.Called(w, records).Error(0)
}
