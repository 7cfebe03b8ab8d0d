package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/rmaciel/atendimento/internal/cache"
	"github.com/rmaciel/atendimento/internal/model"
	"github.com/rmaciel/atendimento/internal/repository"
)

const csvRecordFields = 5

// RegistrationService maintains the customer registry
type RegistrationService interface {
	Create(context.Context, *model.Customer) (*model.Customer, error)
	FindByID(context.Context, string) (*model.Customer, error)
	FindAll(context.Context) ([]*model.Customer, error)
	Upsert(context.Context, *model.Customer) (*model.Customer, error)
	DeleteByID(context.Context, string) error
	ImportCSV(context.Context, io.Reader) (int, error)
}

type registrationService struct {
	customerRepo  repository.CustomerRepository
	customerCache cache.CustomerCacheRepository
}

// NewRegistrationService builds new RegistrationService
func NewRegistrationService(customerRepo repository.CustomerRepository, customerCache cache.CustomerCacheRepository) RegistrationService {
	return &registrationService{customerRepo: customerRepo, customerCache: customerCache}
}

// Create registers the customer. The identifier is caller-supplied; when
// missing one is generated.
func (s *registrationService) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *registrationService) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	c, err := s.customerCache.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c != nil {
		return c, nil
	}

	c, err = s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, nil
	}

	if err := s.customerCache.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *registrationService) FindAll(ctx context.Context) ([]*model.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *registrationService) Upsert(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	existing, err := s.customerRepo.FindByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		if err := s.customerRepo.Create(ctx, c); err != nil {
			return nil, err
		}
		return c, nil
	}

	if err := s.customerCache.DeleteByID(ctx, c.ID); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *registrationService) DeleteByID(ctx context.Context, id string) error {
	if err := s.customerCache.DeleteByID(ctx, id); err != nil {
		return err
	}

	if err := s.customerRepo.DeleteByID(ctx, id); err != nil {
		return err
	}
	return nil
}

// ImportCSV registers all customers of the provided CSV content
// (id,nome,tipo,tempo,chegada) and returns how many were registered. An
// optional header row is detected by attempting to parse the arrival column
// of the first record.
func (s *registrationService) ImportCSV(ctx context.Context, content io.Reader) (int, error) {
	reader := csv.NewReader(content)
	reader.FieldsPerRecord = -1

	customers := make([]*model.Customer, 0)
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read csv content - %w", err)
		}

		if len(record) < csvRecordFields {
			continue
		}

		c, err := customerFromRecord(record)
		if err != nil {
			if first {
				// header row
				first = false
				continue
			}
			return 0, err
		}
		first = false

		customers = append(customers, c)
	}

	// content with only a header row yields nothing to register
	if len(customers) == 0 {
		return 0, nil
	}

	if err := s.customerRepo.CreateAll(ctx, customers); err != nil {
		return 0, err
	}
	return len(customers), nil
}

func customerFromRecord(record []string) (*model.Customer, error) {
	serviceTime, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return nil, err
	}

	arrival, err := strconv.ParseFloat(record[4], 64)
	if err != nil {
		return nil, err
	}

	return &model.Customer{
		ID:          record[0],
		Name:        record[1],
		Type:        model.CustomerType(record[2]).Normalized(),
		ServiceTime: serviceTime,
		Arrival:     arrival,
	}, nil
}
