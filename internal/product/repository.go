package product

import (
	"context"
	"database/sql"

	"simplemarket/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, input NewProductInput) (*Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id,
	name,
	description,
	price,
	available_quantity,
	created_at
`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	var description sql.NullString

	err := row.Scan(
		&p.ID,
		&p.Name,
		&description,
		&p.Price,
		&p.AvailableQuantity,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Description = description.String
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY created_at ASC
	`)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration failed", zap.Error(err))
		return nil, err
	}

	return result, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, input NewProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProduct"),
		zap.String("name", input.Name),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, name, description, price, available_quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+productColumns+`
	`,
		uuid.New().String(),
		input.Name,
		input.Description,
		input.Price,
		input.AvailableQuantity,
	)

	p, err := scanProduct(row)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created", zap.String("product_id", p.ID))
	return p, nil
}

func (r *repository) Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $1,
		    description = $2,
		    price = $3,
		    available_quantity = $4
		WHERE id = $5
		RETURNING `+productColumns+`
	`,
		input.Name,
		input.Description,
		input.Price,
		input.AvailableQuantity,
		id,
	)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM products
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}
