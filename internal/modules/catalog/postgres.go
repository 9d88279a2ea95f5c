package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Create inserts the product and all its variants inside a single transaction.
func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products
		  (id, key, name, tagline, base_price, delivery_fee, category, description, product_image)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.Key, p.Name, p.Tagline, p.BasePrice, p.DeliveryFee, p.Category,
		p.Description, pq.Array(p.ProductImage))
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	if err := insertVariants(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) GetByKey(ctx context.Context, key string) (*Product, error) {
	p := &Product{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, key, name, tagline, base_price, delivery_fee, category, description,
		       product_image, created_at, updated_at
		FROM products WHERE LOWER(key) = LOWER($1)`, key).Scan(
		&p.ID, &p.Key, &p.Name, &p.Tagline, &p.BasePrice, &p.DeliveryFee, &p.Category,
		&p.Description, pq.Array(&p.ProductImage), &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Variants, err = r.listVariants(ctx, p.ID.String())
	return p, err
}

func (r *postgresRepo) List(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, key, name, tagline, base_price, delivery_fee, category, description,
		       product_image, created_at, updated_at
		FROM products ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(
			&p.ID, &p.Key, &p.Name, &p.Tagline, &p.BasePrice, &p.DeliveryFee, &p.Category,
			&p.Description, pq.Array(&p.ProductImage), &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.Variants, err = r.listVariants(ctx, p.ID.String()); err != nil {
			return nil, err
		}
	}
	return products, nil
}

// Update rewrites the product row and replaces its variant list.
func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE products
		SET name=$1, tagline=$2, base_price=$3, delivery_fee=$4, category=$5,
		    description=$6, product_image=$7, updated_at=NOW()
		WHERE id=$8`,
		p.Name, p.Tagline, p.BasePrice, p.DeliveryFee, p.Category,
		p.Description, pq.Array(p.ProductImage), p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM variants WHERE product_id=$1`, p.ID); err != nil {
		return fmt.Errorf("clear variants: %w", err)
	}
	if err := insertVariants(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE LOWER(key) = LOWER($1)`, key)
	return err
}

func (r *postgresRepo) DeleteVariant(ctx context.Context, key, vKey string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM variants
		WHERE v_key=$1
		  AND product_id = (SELECT id FROM products WHERE LOWER(key)=LOWER($2))`, vKey, key)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

func insertVariants(ctx context.Context, tx *sql.Tx, p *Product) error {
	for i, v := range p.Variants {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO variants
			  (id, product_id, v_key, flavor, emoji, stock, availability, variant_image, position)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			v.ID, p.ID, v.VKey, v.Flavor, v.Emoji, v.Stock, v.Availability,
			pq.Array(v.VariantImage), i)
		if err != nil {
			return fmt.Errorf("insert variant: %w", err)
		}
	}
	return nil
}

func (r *postgresRepo) listVariants(ctx context.Context, productID string) ([]*Variant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, v_key, flavor, emoji, stock, availability, variant_image
		FROM variants WHERE product_id=$1 ORDER BY position ASC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []*Variant
	for rows.Next() {
		v := &Variant{}
		if err := rows.Scan(&v.ID, &v.VKey, &v.Flavor, &v.Emoji, &v.Stock,
			&v.Availability, pq.Array(&v.VariantImage)); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}
