package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rmaciel/atendimento/internal/model"
)

// CustomerRepository persists registered customers
type CustomerRepository interface {
	FindByID(context.Context, string) (*model.Customer, error)
	FindAll(context.Context) ([]*model.Customer, error)
	Create(context.Context, *model.Customer) error
	CreateAll(context.Context, []*model.Customer) error
	Update(context.Context, *model.Customer) error
	DeleteByID(context.Context, string) error
}

type postgresCustomerRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCustomerRepository builds postgres customer repository
func NewPostgresCustomerRepository(p *pgxpool.Pool) CustomerRepository {
	return &postgresCustomerRepository{pool: p}
}

func (r *postgresCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	q := "SELECT id, name, type, service_time, arrival FROM customers WHERE id = $1"

	var c model.Customer
	row := r.pool.QueryRow(ctx, q, id)
	if err := row.Scan(&c.ID, &c.Name, &c.Type, &c.ServiceTime, &c.Arrival); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	q := "SELECT id, name, type, service_time, arrival FROM customers ORDER BY arrival"

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.ServiceTime, &c.Arrival); err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *postgresCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	q := "INSERT INTO customers(id, name, type, service_time, arrival) VALUES($1, $2, $3, $4, $5)"
	if _, err := r.pool.Exec(ctx, q, c.ID, c.Name, c.Type, c.ServiceTime, c.Arrival); err != nil {
		return err
	}
	return nil
}

func (r *postgresCustomerRepository) CreateAll(ctx context.Context, customers []*model.Customer) error {
	batch := &pgx.Batch{}
	q := "INSERT INTO customers(id, name, type, service_time, arrival) VALUES($1, $2, $3, $4, $5)"
	for _, c := range customers {
		batch.Queue(q, c.ID, c.Name, c.Type, c.ServiceTime, c.Arrival)
	}

	res := r.pool.SendBatch(ctx, batch)
	defer res.Close()

	for range customers {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	q := "UPDATE customers SET name = $1, type = $2, service_time = $3, arrival = $4 WHERE id = $5"
	if _, err := r.pool.Exec(ctx, q, c.Name, c.Type, c.ServiceTime, c.Arrival, c.ID); err != nil {
		return err
	}
	return nil
}

func (r *postgresCustomerRepository) DeleteByID(ctx context.Context, id string) error {
	q := "DELETE FROM customers WHERE id = $1"
	if _, err := r.pool.Exec(ctx, q, id); err != nil {
		return err
	}
	return nil
}
