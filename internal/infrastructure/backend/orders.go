package backend

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/repository"
)

var _ repository.OrderReportRepository = (*OrderReportRepo)(nil)

// OrderReportRepo lectura de pedidos vía GET /orders/report y GET /orders/:orderSn/detail.
type OrderReportRepo struct {
	c *Client
}

// NewOrderReportRepository construye el adaptador.
func NewOrderReportRepository(c *Client) *OrderReportRepo {
	return &OrderReportRepo{c: c}
}

type orderItemJSON struct {
	SKU       string              `json:"sku"`
	ItemName  string              `json:"itemName"`
	Quantity  int64               `json:"quantity"`
	UnitPrice decimal.Decimal     `json:"unitPrice"`
	HPP       decimal.NullDecimal `json:"hpp"`
}

type feesJSON struct {
	CommissionFee     decimal.Decimal `json:"commissionFee"`
	ServiceFee        decimal.Decimal `json:"serviceFee"`
	TransactionFee    decimal.Decimal `json:"transactionFee"`
	ShippingFee       decimal.Decimal `json:"shippingFee"`
	PaymentChannelFee decimal.Decimal `json:"paymentChannelFee"`
}

type escrowJSON struct {
	PayoutAmount       decimal.Decimal `json:"payoutAmount"`
	EscrowReleaseTime  flexTime        `json:"escrowReleaseTime"`
	BuyerPaymentMethod string          `json:"buyerPaymentMethod"`
}

type orderJSON struct {
	OrderSn     string          `json:"orderSn"`
	OrderStatus string          `json:"orderStatus"`
	CreateTime  flexTime        `json:"createTime"`
	PayTime     flexTime        `json:"payTime"`
	ShopName    string          `json:"shopName"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Fees        feesJSON        `json:"fees"`
	Escrow      *escrowJSON     `json:"escrow"`
	Items       []orderItemJSON `json:"items"`
}

type orderListJSON struct {
	Orders []orderJSON `json:"orders"`
}

type orderDetailJSON struct {
	Order *orderJSON `json:"order"`
}

// ListOrders delega el filtro al backend; el caso de uso vuelve a aplicarlo sobre la respuesta.
func (r *OrderReportRepo) ListOrders(ctx context.Context, shopID string, filter entity.OrderFilter) ([]entity.OrderBundle, error) {
	q := shopQuery(shopID)
	if filter.Status != "" {
		q.Set("orderStatus", filter.Status)
	}
	if filter.Start != nil {
		q.Set("startDate", filter.Start.Format(time.RFC3339))
	}
	if filter.End != nil {
		q.Set("endDate", filter.End.Format(time.RFC3339))
	}
	if filter.SKU != "" {
		q.Set("sku", filter.SKU)
	}

	var resp orderListJSON
	if _, err := r.c.do(ctx, http.MethodGet, "/orders/report", q, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]entity.OrderBundle, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		out = append(out, o.bundle())
	}
	return out, nil
}

// GetOrder devuelve (nil, nil) ante un 404.
func (r *OrderReportRepo) GetOrder(ctx context.Context, shopID, orderSn string) (*entity.OrderBundle, error) {
	var resp orderDetailJSON
	_, err := r.c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderSn)+"/detail", shopQuery(shopID), nil, &resp)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if resp.Order == nil {
		return nil, nil
	}
	b := resp.Order.bundle()
	return &b, nil
}

func (o orderJSON) bundle() entity.OrderBundle {
	b := entity.OrderBundle{
		Order: entity.Order{
			OrderSn:     o.OrderSn,
			Status:      o.OrderStatus,
			OrderDate:   o.CreateTime.value(),
			PaymentDate: o.PayTime.t,
			ShopName:    o.ShopName,
			TotalAmount: o.TotalAmount,
		},
		Fees: entity.PlatformFees{
			Commission:     o.Fees.CommissionFee,
			Service:        o.Fees.ServiceFee,
			Transaction:    o.Fees.TransactionFee,
			Shipping:       o.Fees.ShippingFee,
			PaymentChannel: o.Fees.PaymentChannelFee,
		},
		Items: make([]entity.OrderItem, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		b.Items = append(b.Items, entity.OrderItem{
			OrderSn:   o.OrderSn,
			SKU:       it.SKU,
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			HPP:       it.HPP,
		})
	}
	if o.Escrow != nil {
		b.Escrow = &entity.EscrowDetail{
			PayoutAmount:       o.Escrow.PayoutAmount,
			EscrowReleaseTime:  o.Escrow.EscrowReleaseTime.t,
			BuyerPaymentMethod: o.Escrow.BuyerPaymentMethod,
		}
	}
	return b
}
