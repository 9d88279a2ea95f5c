package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Create inserts the order and all its line snapshots inside a single
// transaction.
func (r *postgresRepo) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (order_id, email, first_name, last_name, ship_address, ship_city,
		   ship_postal_code, ship_phone, order_date, is_approved, status, total_amount,
		   created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		o.OrderID, o.Email, o.FirstName, o.LastName,
		o.ShippingAddress.Address, o.ShippingAddress.City,
		o.ShippingAddress.PostalCode, o.ShippingAddress.Phone,
		o.OrderDate, o.IsApproved, o.Status, o.TotalAmount,
		o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, item := range o.OrderedItems {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items
			  (id, order_id, position, product_key, name, base_price, delivery_fee,
			   v_key, flavor, variant_image, qty)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
			uuid.New(), o.OrderID, i, item.ProductKey, item.Name,
			item.BasePrice, item.DeliveryFee,
			item.Variant.VKey, item.Variant.Flavor,
			pq.Array(item.Variant.VariantImage), item.Variant.Qty)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetByOrderID(ctx context.Context, orderID string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrder+` WHERE order_id=$1`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	o.OrderedItems, err = r.listItems(ctx, o.OrderID)
	return o, err
}

func (r *postgresRepo) Latest(ctx context.Context) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrder+` ORDER BY order_date DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return o, err
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx, selectOrder+` ORDER BY created_at DESC`)
}

func (r *postgresRepo) ListByEmail(ctx context.Context, email string) ([]*Order, error) {
	return r.queryOrders(ctx, selectOrder+` WHERE email=$1 ORDER BY created_at DESC`, email)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, o *Order) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, is_approved=$2, updated_at=$3 WHERE order_id=$4`,
		o.Status, o.IsApproved, o.UpdatedAt, o.OrderID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

const selectOrder = `
	SELECT order_id, email, first_name, last_name, ship_address, ship_city,
	       ship_postal_code, ship_phone, order_date, is_approved, status,
	       total_amount, created_at, updated_at
	FROM orders`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	err := row.Scan(
		&o.OrderID, &o.Email, &o.FirstName, &o.LastName,
		&o.ShippingAddress.Address, &o.ShippingAddress.City,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Phone,
		&o.OrderDate, &o.IsApproved, &o.Status,
		&o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.OrderedItems, err = r.listItems(ctx, o.OrderID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) listItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_key, name, base_price, delivery_fee, v_key, flavor, variant_image, qty
		FROM order_items WHERE order_id=$1 ORDER BY position ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ProductKey, &item.Name, &item.BasePrice, &item.DeliveryFee,
			&item.Variant.VKey, &item.Variant.Flavor,
			pq.Array(&item.Variant.VariantImage), &item.Variant.Qty); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
