package service

import (
	"context"
	"errors"
	"testing"
	"time"

	appErrors "github.com/rmaciel/atendimento/internal/errors"
	"github.com/rmaciel/atendimento/internal/model"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	cacheMocks "github.com/rmaciel/atendimento/internal/cache/mocks"
	rpsMocks "github.com/rmaciel/atendimento/internal/repository/mocks"
)

type simulationTestData struct {
	ctx    context.Context
	params model.RunParams
	report *model.Report
}

type simulationServiceTestSuite struct {
	suite.Suite
	simulationSvc   SimulationService
	transactorMock  *rpsMocks.Transactor
	customerRpsMock *rpsMocks.CustomerRepository
	reportRpsMock   *rpsMocks.ReportRepository
	statsCacheMock  *cacheMocks.StatisticsCacheRepository
	testData        *simulationTestData
}

func (s *simulationServiceTestSuite) SetupSuite() {
	s.transactorMock = rpsMocks.NewTransactor(s.T())
	s.transactorMock.On(
		"WithinTransaction",
		context.Background(),
		mock.AnythingOfType("func(context.Context) error"),
	).Return(func(ctx context.Context, txFunc func(ctx context.Context) error) error {
		return txFunc(ctx)
	})

	s.testData = &simulationTestData{
		ctx: context.Background(),
		params: model.RunParams{
			Structure:   model.StructureList,
			Algorithm:   model.AlgorithmMerge,
			ReorderRule: model.ReorderByPriority,
		},
		report: &model.Report{
			ID:           "0b26bbb6-9887-4e19-b9a0-ca2bd0c596c1",
			GeneratedAt:  time.Now().UTC(),
			UndoRecorded: true,
			Statistics: model.Statistics{
				Served:           2,
				TotalWait:        9,
				MeanWait:         4.5,
				TotalServiceTime: 15,
				Structure:        model.StructureList,
				Algorithm:        model.AlgorithmMerge,
				ReorderRule:      model.ReorderByPriority,
				ComplexityHint:   "O(n log n)",
			},
			Served: []model.ServedCustomer{
				{
					Customer:     model.Customer{ID: "c1", Name: "Ana", Type: model.TypeRegular, ServiceTime: 10},
					ServiceStart: 0,
					ServiceEnd:   10,
				},
				{
					Customer:     model.Customer{ID: "c2", Name: "Bia", Type: model.TypeRegular, ServiceTime: 5, Arrival: 1},
					ServiceStart: 10,
					ServiceEnd:   15,
				},
			},
		},
	}
}

func (s *simulationServiceTestSuite) SetupTest() {
	t := s.T()
	s.customerRpsMock = rpsMocks.NewCustomerRepository(t)
	s.reportRpsMock = rpsMocks.NewReportRepository(t)
	s.statsCacheMock = cacheMocks.NewStatisticsCacheRepository(t)
	s.simulationSvc = NewSimulationService(s.transactorMock, s.customerRpsMock, s.reportRpsMock, s.statsCacheMock)
}

func (s *simulationServiceTestSuite) TestProcessSuccessfully() {
	ctx := s.testData.ctx

	registered := []*model.Customer{
		{ID: "c1", Name: "Ana", Type: model.TypeRegular, ServiceTime: 10},
		{ID: "c2", Name: "Bia", Type: model.TypeRegular, ServiceTime: 5, Arrival: 1},
	}

	s.customerRpsMock.On("FindAll", ctx).Return(registered, nil).Once()
	s.reportRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Report")).Return(nil).Once()
	s.statsCacheMock.On("Store", ctx, mock.AnythingOfType("*model.Statistics")).Return(nil).Once()

	s.T().Log("report must be produced, persisted and its statistics cached")
	{
		report, err := s.simulationSvc.Process(ctx, s.testData.params)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(2, report.Statistics.Served, "both customers must be served")
		s.Assert().NotEmpty(report.ID, "report identifier must be assigned")
		s.statsCacheMock.AssertCalled(s.T(), "Store", ctx, mock.AnythingOfType("*model.Statistics"))
	}
}

func (s *simulationServiceTestSuite) TestProcessCacheFailureTolerated() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("FindAll", ctx).Return([]*model.Customer{}, nil).Once()
	s.reportRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Report")).Return(nil).Once()
	s.statsCacheMock.On("Store", ctx, mock.AnythingOfType("*model.Statistics")).Return(errors.New("cache err")).Once()

	s.T().Log("caching failure must not fail processing")
	{
		report, err := s.simulationSvc.Process(ctx, s.testData.params)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotNil(report, "report must still be returned")
	}
}

func (s *simulationServiceTestSuite) TestProcessPersistenceFailed() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("FindAll", ctx).Return([]*model.Customer{}, nil).Once()
	s.reportRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Report")).Return(errors.New("db err")).Once()

	s.T().Log("persistence failure must be raised up")
	{
		_, err := s.simulationSvc.Process(ctx, s.testData.params)
		s.Assert().Error(err, "repository raised error - error must be raised up")
		s.statsCacheMock.AssertNotCalled(s.T(), "Store", ctx, mock.AnythingOfType("*model.Statistics"))
	}
}

func (s *simulationServiceTestSuite) TestStatisticsFromCache() {
	ctx := s.testData.ctx
	stats := &s.testData.report.Statistics

	s.statsCacheMock.On("FindLatest", ctx).Return(stats, nil).Once()

	s.T().Log("statistics must be served from cache")
	{
		found, err := s.simulationSvc.Statistics(ctx)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(stats, found, "cached statistics must be returned")
		s.reportRpsMock.AssertNotCalled(s.T(), "FindLatest", ctx)
	}
}

func (s *simulationServiceTestSuite) TestStatisticsFromRepository() {
	ctx := s.testData.ctx
	report := s.testData.report

	s.statsCacheMock.On("FindLatest", ctx).Return(nil, nil).Once()
	s.reportRpsMock.On("FindLatest", ctx).Return(report, nil).Once()
	s.statsCacheMock.On("Store", ctx, &report.Statistics).Return(nil).Once()

	s.T().Log("statistics are missing in cache, found in primary datasource and cached")
	{
		found, err := s.simulationSvc.Statistics(ctx)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(report.Statistics.Served, found.Served, "statistics of latest report must be returned")
	}
}

func (s *simulationServiceTestSuite) TestStatisticsNoRunYet() {
	ctx := s.testData.ctx

	s.statsCacheMock.On("FindLatest", ctx).Return(nil, nil).Once()
	s.reportRpsMock.On("FindLatest", ctx).Return(nil, nil).Once()

	s.T().Log("no simulation was processed yet")
	{
		_, err := s.simulationSvc.Statistics(ctx)
		s.Assert().Error(err, "error must be raised")
		s.Assert().IsType(&appErrors.EntryNotFoundErr{}, err, "error must be entry not found error")
	}
}

func (s *simulationServiceTestSuite) TestReportTextSuccessfully() {
	ctx := s.testData.ctx

	s.reportRpsMock.On("FindLatest", ctx).Return(s.testData.report, nil).Once()

	s.T().Log("rendered report must be returned")
	{
		text, err := s.simulationSvc.ReportText(ctx)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Contains(text, "Relatório de Simulação", "rendered report must carry the header")
	}
}

func (s *simulationServiceTestSuite) TestReportTextNoRunYet() {
	ctx := s.testData.ctx

	s.reportRpsMock.On("FindLatest", ctx).Return(nil, nil).Once()

	s.T().Log("no simulation was processed yet")
	{
		_, err := s.simulationSvc.ReportText(ctx)
		s.Assert().Error(err, "error must be raised")
		s.Assert().IsType(&appErrors.EntryNotFoundErr{}, err, "error must be entry not found error")
	}
}

func (s *simulationServiceTestSuite) TestUndoLastServiceSuccessfully() {
	ctx := s.testData.ctx
	report := s.testData.report

	s.reportRpsMock.On("FindLatest", ctx).Return(report, nil).Once()
	s.reportRpsMock.On("DeleteEntry", ctx, report.ID, 1).Return(nil).Once()

	s.T().Log("most recently served customer must be removed and returned")
	{
		undone, err := s.simulationSvc.UndoLastService(ctx)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal("c2", undone.ID, "last served customer must be returned")
	}
}

func (s *simulationServiceTestSuite) TestUndoLastServiceNothingServed() {
	ctx := s.testData.ctx

	s.reportRpsMock.On("FindLatest", ctx).Return(&model.Report{ID: "empty"}, nil).Once()

	s.T().Log("report without served entries leaves nothing to undo")
	{
		_, err := s.simulationSvc.UndoLastService(ctx)
		s.Assert().Error(err, "error must be raised")
		s.Assert().IsType(&appErrors.EntryNotFoundErr{}, err, "error must be entry not found error")
		s.reportRpsMock.AssertNotCalled(s.T(), "DeleteEntry", ctx, "empty", 0)
	}
}

func (s *simulationServiceTestSuite) TestUndoLastServiceNotRecorded() {
	ctx := s.testData.ctx

	report := &model.Report{
		ID:     "b3d0a0f4-6f16-41bc-92b8-4242fbd200b7",
		Served: s.testData.report.Served,
	}

	s.reportRpsMock.On("FindLatest", ctx).Return(report, nil).Once()

	s.T().Log("run was processed without undo recording, undo must be refused")
	{
		_, err := s.simulationSvc.UndoLastService(ctx)
		s.Assert().Error(err, "error must be raised")
		s.Assert().IsType(&appErrors.BusinessErr{}, err, "error must be business error")
		s.reportRpsMock.AssertNotCalled(s.T(), "DeleteEntry", ctx, report.ID, 1)
	}
}

// start simulation service test suite
func TestSimulationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(simulationServiceTestSuite))
}
