package service

import (
	"context"
	"time"

	"github.com/rmaciel/atendimento/internal/cache"
	"github.com/rmaciel/atendimento/internal/errors"
	"github.com/rmaciel/atendimento/internal/model"
	"github.com/rmaciel/atendimento/internal/repository"
	"github.com/rmaciel/atendimento/internal/simulation"
	"github.com/rmaciel/atendimento/pkg/db/transactor"
	"github.com/sirupsen/logrus"
)

// SimulationService runs queue simulations over the registered customers and
// serves their statistics
type SimulationService interface {
	Process(context.Context, model.RunParams) (*model.Report, error)
	Statistics(context.Context) (*model.Statistics, error)
	ReportText(context.Context) (string, error)
	UndoLastService(context.Context) (*model.ServedCustomer, error)
}

type simulationService struct {
	trx          transactor.Transactor
	customerRepo repository.CustomerRepository
	reportRepo   repository.ReportRepository
	statsCache   cache.StatisticsCacheRepository
}

// NewSimulationService builds new SimulationService
func NewSimulationService(
	trx transactor.Transactor,
	customerRepo repository.CustomerRepository,
	reportRepo repository.ReportRepository,
	statsCache cache.StatisticsCacheRepository,
) SimulationService {
	return &simulationService{trx: trx, customerRepo: customerRepo, reportRepo: reportRepo, statsCache: statsCache}
}

// Process loads all registered customers, simulates serving them and
// persists the produced report. The report and its served entries are
// written within a single transaction.
func (s *simulationService) Process(ctx context.Context, params model.RunParams) (*model.Report, error) {
	registered, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	customers := make([]model.Customer, 0, len(registered))
	for _, c := range registered {
		customers = append(customers, *c)
	}

	result := simulation.Run(customers, params, time.Now().UTC())
	report := &result

	err = s.trx.WithinTransaction(ctx, func(txCtx context.Context) error {
		return s.reportRepo.Create(txCtx, report)
	})
	if err != nil {
		return nil, err
	}

	// statistics stay servable from the repository if caching fails
	if err := s.statsCache.Store(ctx, &report.Statistics); err != nil {
		logrus.Errorf("failed to cache statistics of report %s - %v", report.ID, err)
	}

	return report, nil
}

func (s *simulationService) Statistics(ctx context.Context) (*model.Statistics, error) {
	stats, err := s.statsCache.FindLatest(ctx)
	if err != nil {
		return nil, err
	}

	if stats != nil {
		return stats, nil
	}

	report, err := s.reportRepo.FindLatest(ctx)
	if err != nil {
		return nil, err
	}

	if report == nil {
		return nil, errors.NewEntryNotFoundErr("no simulation has been processed yet")
	}

	if err := s.statsCache.Store(ctx, &report.Statistics); err != nil {
		logrus.Errorf("failed to cache statistics of report %s - %v", report.ID, err)
	}
	return &report.Statistics, nil
}

func (s *simulationService) ReportText(ctx context.Context) (string, error) {
	report, err := s.reportRepo.FindLatest(ctx)
	if err != nil {
		return "", err
	}

	if report == nil {
		return "", errors.NewEntryNotFoundErr("no simulation has been processed yet")
	}
	return simulation.RenderReport(report), nil
}

// UndoLastService removes the most recently served customer from the latest
// report and returns it. Only runs processed with undo recording can be
// undone.
func (s *simulationService) UndoLastService(ctx context.Context) (*model.ServedCustomer, error) {
	report, err := s.reportRepo.FindLatest(ctx)
	if err != nil {
		return nil, err
	}

	if report == nil || len(report.Served) == 0 {
		return nil, errors.NewEntryNotFoundErr("no service left to undo")
	}

	if !report.UndoRecorded {
		return nil, errors.NewBusinessErr("desfazer", "the latest run did not record undo")
	}

	last := report.Served[len(report.Served)-1]
	if err := s.reportRepo.DeleteEntry(ctx, report.ID, len(report.Served)-1); err != nil {
		return nil, err
	}
	return &last, nil
}
