package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/srgjo27/royale_boxoffice/internal/core/domain"
)

type CustomerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Register stores the patron's details and returns the new customer id.
func (r *CustomerRepository) Register(ctx context.Context, profile domain.Profile) (int64, error) {
	query := `
	INSERT INTO customers (first_name, last_name, house_number, street_name, postal_code)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING customer_id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, profile.FirstName, profile.LastName,
		profile.HouseNumber, profile.Street, profile.PostalCode).Scan(&id)
	if err != nil {
		return -1, fmt.Errorf("failed to insert customer: %w", err)
	}

	return id, nil
}
