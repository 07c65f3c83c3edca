package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/infrastructure/backend"
	"github.com/jhoicas/hpp-api/pkg/config"
)

func newClient(t *testing.T, h http.HandlerFunc) *backend.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return backend.NewClient(config.BackendConfig{BaseURL: srv.URL + "/", Token: "tok", Timeout: 5 * time.Second})
}

func TestCatalogRepo_ListSkus(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/order-items/skus", r.URL.Path)
		assert.Equal(t, "shop-1", r.URL.Query().Get("shopId"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"skus":[
			{"sku":"A","itemName":"Kaos","totalOrders":3,"totalQuantity":5,"totalRevenue":"500000","currentHpp":40000},
			{"sku":"B","itemName":"Celana","totalOrders":1,"totalQuantity":1,"totalRevenue":120000,"currentHpp":null},
			{"sku":"","itemName":"sin sku"}
		]}`))
	})

	recs, err := backend.NewCatalogRepository(c).ListSkus(context.Background(), "shop-1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "A", recs[0].SKU)
	assert.True(t, recs[0].CurrentHPP.Valid)
	assert.True(t, recs[0].CurrentHPP.Decimal.Equal(decimal.NewFromInt(40000)))
	assert.True(t, recs[0].TotalRevenue.Equal(decimal.NewFromInt(500000)))
	assert.False(t, recs[1].HasCostBasis(), "null se conserva como HPP desconocido")
}

func TestCatalogRepo_ServerError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"upstream caído"}`))
	})

	_, err := backend.NewCatalogRepository(c).ListSkus(context.Background(), "shop-1")
	var se *backend.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Status)
	assert.Equal(t, "upstream caído", se.Message)
}

func TestCostBasisStore_BulkUpdate(t *testing.T) {
	var got map[string]any
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/order-items/hpp/bulk-update", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","updated":2}`))
	})

	res, err := backend.NewCostBasisStore(c).BulkUpdateHPP(context.Background(), "shop-1", entity.CostBasisBatch{
		ID:    "batch-1",
		Notes: "marzo",
		Items: []entity.CostBasisBatchItem{
			{SKU: "A", HPP: decimal.NewFromInt(40000), ItemName: "Kaos"},
			{SKU: "B", HPP: decimal.RequireFromString("1500.5")},
		},
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Updated)

	assert.Equal(t, "marzo", got["notes"])
	assert.Equal(t, "batch-1", got["batchId"])
	items := got["items"].([]any)
	require.Len(t, items, 2)
	second := items[1].(map[string]any)
	assert.Equal(t, "B", second["sku"])
	assert.NotContains(t, second, "itemName", "sin nombre se omite")
}

func TestCostBasisStore_RejectionIsNotError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"SKU inválido","rejected":[{"sku":"X","reason":"no existe"}]}`))
	})

	res, err := backend.NewCostBasisStore(c).BulkUpdateHPP(context.Background(), "shop-1", entity.CostBasisBatch{ID: "b"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "SKU inválido", res.Message)
	assert.Equal(t, []entity.RejectedItem{{SKU: "X", Reason: "no existe"}}, res.Rejected)
}

func TestCostBasisStore_ServerErrorIsError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`boom`))
	})

	res, err := backend.NewCostBasisStore(c).BulkUpdateHPP(context.Background(), "shop-1", entity.CostBasisBatch{ID: "b"})
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestOrderReportRepo_ListOrders(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/report", r.URL.Path)
		assert.Equal(t, "COMPLETED", r.URL.Query().Get("orderStatus"))
		assert.Equal(t, "2024-03-01T00:00:00Z", r.URL.Query().Get("startDate"))
		_, _ = w.Write([]byte(`{"orders":[{
			"orderSn":"SN1","orderStatus":"COMPLETED","createTime":1709280000,"payTime":"2024-03-01T10:00:00Z",
			"shopName":"Toko","totalAmount":"100000",
			"fees":{"commissionFee":5000,"serviceFee":2000,"transactionFee":0,"shippingFee":0,"paymentChannelFee":1000},
			"escrow":{"payoutAmount":92000,"escrowReleaseTime":null,"buyerPaymentMethod":"ShopeePay"},
			"items":[{"sku":"A","itemName":"Kaos","quantity":2,"unitPrice":50000,"hpp":null}]
		},{"orderSn":"SN2","orderStatus":"COMPLETED","createTime":"no es fecha","items":[]}]}`))
	})

	bundles, err := backend.NewOrderReportRepository(c).ListOrders(context.Background(), "shop-1",
		entity.OrderFilter{Status: entity.OrderStatusCompleted, Start: &start})
	require.NoError(t, err)
	require.Len(t, bundles, 2)

	b := bundles[0]
	assert.Equal(t, time.Unix(1709280000, 0).UTC(), b.Order.OrderDate)
	require.NotNil(t, b.Order.PaymentDate)
	assert.True(t, b.Fees.Total().Equal(decimal.NewFromInt(8000)))
	require.Len(t, b.Items, 1)
	assert.Equal(t, "SN1", b.Items[0].OrderSn)
	assert.False(t, b.Items[0].HPP.Valid)
	require.NotNil(t, b.Escrow)
	assert.Nil(t, b.Escrow.EscrowReleaseTime)
	assert.Equal(t, "ShopeePay", b.Escrow.BuyerPaymentMethod)

	assert.True(t, bundles[1].Order.OrderDate.IsZero(), "fecha no interpretable = sin fecha")
	assert.Nil(t, bundles[1].Escrow)
}

func TestOrderReportRepo_GetOrderNotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/SN%2F9/detail", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
	})

	b, err := backend.NewOrderReportRepository(c).GetOrder(context.Background(), "shop-1", "SN/9")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestOrderReportRepo_GetOrder(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"order":{"orderSn":"SN1","orderStatus":"SHIPPED","createTime":"2024-03-02 08:00:00",
			"items":[{"sku":"A","quantity":1,"unitPrice":10000,"hpp":6000}]}}`))
	})

	b, err := backend.NewOrderReportRepository(c).GetOrder(context.Background(), "shop-1", "SN1")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), b.Order.OrderDate)
	require.Len(t, b.Items, 1)
	assert.True(t, b.Items[0].HPP.Decimal.Equal(decimal.NewFromInt(6000)))
}
