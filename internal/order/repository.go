package order

import (
	"context"
	"database/sql"

	"simplemarket/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	ListByBuyer(ctx context.Context, buyerName string) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	CountOrders(ctx context.Context) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `
	id,
	product_id,
	product_name,
	quantity,
	unit_price,
	total_price,
	buyer_name,
	shipping_address,
	order_date
`

func scanOrder(row interface{ Scan(...any) error }) (*Order, error) {
	var o Order
	var productID sql.NullString
	var address sql.NullString

	err := row.Scan(
		&o.ID,
		&productID,
		&o.ProductName,
		&o.Quantity,
		&o.UnitPrice,
		&o.TotalPrice,
		&o.BuyerName,
		&address,
		&o.OrderDate,
	)
	if err != nil {
		return nil, err
	}

	if productID.Valid {
		o.ProductID = &productID.String
	}
	o.ShippingAddress = address.String
	return &o, nil
}

// Create persists an order. For catalog orders the stock decrement and the
// insert run in one transaction; the guarded UPDATE keeps concurrent buyers
// from overselling the last units.
func (r *repository) Create(ctx context.Context, o *Order) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("buyer", o.BuyerName),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if o.ProductID != nil {
		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET available_quantity = available_quantity - $1
			WHERE id = $2 AND available_quantity >= $1
		`, o.Quantity, *o.ProductID)
		if err != nil {
			log.Error("stock decrement failed", zap.Error(err))
			return nil, err
		}

		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if rowsAffected == 0 {
			// Distinguish a missing product from exhausted stock.
			var exists bool
			err := tx.QueryRowContext(ctx,
				`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`,
				*o.ProductID,
			).Scan(&exists)
			if err != nil {
				return nil, err
			}
			if !exists {
				return nil, ErrProductNotFound
			}
			return nil, ErrInsufficientStock
		}
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id,
			product_id,
			product_name,
			quantity,
			unit_price,
			total_price,
			buyer_name,
			shipping_address,
			order_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+orderColumns+`
	`,
		uuid.New().String(),
		o.ProductID,
		o.ProductName,
		o.Quantity,
		o.UnitPrice,
		o.TotalPrice,
		o.BuyerName,
		o.ShippingAddress,
		o.OrderDate,
	)

	created, err := scanOrder(row)
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", created.ID),
		zap.Int("quantity", created.Quantity),
	)
	return created, nil
}

func (r *repository) ListByBuyer(ctx context.Context, buyerName string) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrdersByBuyer"),
	)

	query := `
		SELECT ` + orderColumns + `
		FROM orders
	`
	args := []any{}
	if buyerName != "" {
		query += ` WHERE buyer_name = $1`
		args = append(args, buyerName)
	}
	query += ` ORDER BY order_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.NullDecimal

	err := r.db.QueryRowContext(ctx,
		`SELECT SUM(total_price) FROM orders`,
	).Scan(&revenue)
	if err != nil {
		return decimal.Zero, err
	}

	if !revenue.Valid {
		return decimal.Zero, nil
	}
	return revenue.Decimal, nil
}

func (r *repository) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders`,
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
