package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hpp-api/internal/domain/entity"
	"github.com/jhoicas/hpp-api/internal/domain/repository"
)

var _ repository.OrderReportRepository = (*OrderReportRepo)(nil)

// OrderReportRepo lectura de pedidos con líneas, comisiones y liquidación.
type OrderReportRepo struct {
	q Querier
}

// NewOrderReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderReportRepository(q Querier) *OrderReportRepo {
	return &OrderReportRepo{q: q}
}

const orderColumns = `
	o.order_sn, o.order_status, o.create_time, o.pay_time, o.shop_name, o.total_amount,
	o.commission_fee, o.service_fee, o.transaction_fee, o.shipping_fee, o.payment_channel_fee,
	e.order_sn IS NOT NULL, COALESCE(e.payout_amount, 0), e.escrow_release_time, COALESCE(e.buyer_payment_method, '')`

// ListOrders aplica estado y rango de fechas en SQL. Con filtro de SKU solo entran los pedidos
// que tienen alguna línea coincidente y solo se devuelven esas líneas.
func (r *OrderReportRepo) ListOrders(ctx context.Context, shopID string, filter entity.OrderFilter) ([]entity.OrderBundle, error) {
	where, args := orderWhere(shopID, filter)
	query := `SELECT` + orderColumns + `
	FROM orders o
	LEFT JOIN order_escrows e ON e.shop_id = o.shop_id AND e.order_sn = o.order_sn
	WHERE ` + where + `
	ORDER BY o.create_time DESC NULLS LAST, o.order_sn`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var bundles []entity.OrderBundle
	for rows.Next() {
		b, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(bundles) == 0 {
		return bundles, nil
	}

	sns := make([]string, len(bundles))
	for i, b := range bundles {
		sns[i] = b.Order.OrderSn
	}
	items, err := r.listItems(ctx, shopID, sns, filter.SKU)
	if err != nil {
		return nil, err
	}
	for i := range bundles {
		bundles[i].Items = items[bundles[i].Order.OrderSn]
	}
	return bundles, nil
}

// GetOrder devuelve (nil, nil) si el pedido no existe.
func (r *OrderReportRepo) GetOrder(ctx context.Context, shopID, orderSn string) (*entity.OrderBundle, error) {
	query := `SELECT` + orderColumns + `
	FROM orders o
	LEFT JOIN order_escrows e ON e.shop_id = o.shop_id AND e.order_sn = o.order_sn
	WHERE o.shop_id = $1 AND o.order_sn = $2`

	b, err := scanOrder(r.q.QueryRow(ctx, query, shopID, orderSn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	items, err := r.listItems(ctx, shopID, []string{orderSn}, "")
	if err != nil {
		return nil, err
	}
	b.Items = items[orderSn]
	return &b, nil
}

func (r *OrderReportRepo) listItems(ctx context.Context, shopID string, orderSns []string, sku string) (map[string][]entity.OrderItem, error) {
	query := `
	SELECT order_sn, item_sku, item_name, quantity, unit_price, hpp
	FROM order_items
	WHERE shop_id = $1 AND order_sn = ANY($2)`
	args := []any{shopID, orderSns}
	if sku != "" {
		query += ` AND item_sku ILIKE $3`
		args = append(args, likePattern(sku))
	}
	query += ` ORDER BY order_sn, id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.OrderItem, len(orderSns))
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.OrderSn, &it.SKU, &it.ItemName, &it.Quantity, &it.UnitPrice, &it.HPP); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out[it.OrderSn] = append(out[it.OrderSn], it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return out, nil
}

func scanOrder(row pgx.Row) (entity.OrderBundle, error) {
	var (
		b          entity.OrderBundle
		created    *time.Time
		hasEscrow  bool
		payout     decimal.Decimal
		releasedAt *time.Time
		method     string
	)
	err := row.Scan(
		&b.Order.OrderSn, &b.Order.Status, &created, &b.Order.PaymentDate, &b.Order.ShopName, &b.Order.TotalAmount,
		&b.Fees.Commission, &b.Fees.Service, &b.Fees.Transaction, &b.Fees.Shipping, &b.Fees.PaymentChannel,
		&hasEscrow, &payout, &releasedAt, &method,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return b, err
		}
		return b, fmt.Errorf("scan order: %w", err)
	}
	b.Order.OrderDate = timeOrZero(created)
	if hasEscrow {
		b.Escrow = &entity.EscrowDetail{PayoutAmount: payout, EscrowReleaseTime: releasedAt, BuyerPaymentMethod: method}
	}
	return b, nil
}

// orderWhere arma el WHERE de cabecera: COMPLETED exacto, PENDING = todo lo no completado.
func orderWhere(shopID string, f entity.OrderFilter) (string, []any) {
	conds := []string{"o.shop_id = $1"}
	args := []any{shopID}
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch f.Status {
	case "", entity.OrderStatusAll:
	case entity.OrderStatusPending:
		conds = append(conds, "o.order_status <> "+next(entity.OrderStatusCompleted))
	default:
		conds = append(conds, "o.order_status = "+next(f.Status))
	}
	if f.Start != nil {
		conds = append(conds, "o.create_time >= "+next(*f.Start))
	}
	if f.End != nil {
		conds = append(conds, "o.create_time <= "+next(*f.End))
	}
	if f.SKU != "" {
		conds = append(conds, `EXISTS (SELECT 1 FROM order_items oi
	    WHERE oi.shop_id = o.shop_id AND oi.order_sn = o.order_sn AND oi.item_sku ILIKE `+next(likePattern(f.SKU))+`)`)
	}
	return strings.Join(conds, " AND "), args
}
