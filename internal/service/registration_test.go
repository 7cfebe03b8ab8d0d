package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rmaciel/atendimento/internal/model"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	cacheMocks "github.com/rmaciel/atendimento/internal/cache/mocks"
	rpsMocks "github.com/rmaciel/atendimento/internal/repository/mocks"
)

type registrationTestData struct {
	ctx      context.Context
	customer *model.Customer
}

type registrationServiceTestSuite struct {
	suite.Suite
	registrationSvc   RegistrationService
	customerRpsMock   *rpsMocks.CustomerRepository
	customerCacheMock *cacheMocks.CustomerCacheRepository
	testData          *registrationTestData
}

func (s *registrationServiceTestSuite) SetupSuite() {
	s.testData = &registrationTestData{
		ctx: context.Background(),
		customer: &model.Customer{
			ID:          "c42",
			Name:        "Maria Souza",
			Type:        model.TypePriority,
			ServiceTime: 8,
			Arrival:     3,
		},
	}
}

func (s *registrationServiceTestSuite) SetupTest() {
	t := s.T()
	s.customerRpsMock = rpsMocks.NewCustomerRepository(t)
	s.customerCacheMock = cacheMocks.NewCustomerCacheRepository(t)
	s.registrationSvc = NewRegistrationService(s.customerRpsMock, s.customerCacheMock)
}

func (s *registrationServiceTestSuite) TestCreateSuccessfully() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerRpsMock.On("Create", ctx, customer).Return(nil).Once()

	s.T().Log("customer must be registered successfully")
	{
		c, err := s.registrationSvc.Create(ctx, customer)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customer.ID, c.ID, "provided identifier must be kept")
	}
}

func (s *registrationServiceTestSuite) TestCreateGeneratesMissingID() {
	ctx := s.testData.ctx

	s.customerRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Customer")).Return(nil).Once()

	s.T().Log("identifier must be generated when not provided")
	{
		c, err := s.registrationSvc.Create(ctx, &model.Customer{Name: "Sem ID", Type: model.TypeRegular})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotEmpty(c.ID, "identifier must be generated")
	}
}

func (s *registrationServiceTestSuite) TestFindByIDFromCache() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()

	s.T().Log("customer must be found in cache")
	{
		_, err := s.registrationSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.customerRpsMock.AssertNotCalled(s.T(), "FindByID", ctx, customer.ID)
	}
}

func (s *registrationServiceTestSuite) TestFindByIDNotFound() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()
	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()

	s.T().Log("customer is missing in cache and in primary datasource")
	{
		c, err := s.registrationSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Nil(c, "no customer must be present but it was found")
		s.customerCacheMock.AssertNotCalled(s.T(), "Create", mock.AnythingOfType("*model.Customer"))
	}
}

func (s *registrationServiceTestSuite) TestFindByIDCached() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()
	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.customerCacheMock.On("Create", ctx, customer).Return(nil).Once()

	s.T().Log("customer is not in cache, found in primary datasource and cached")
	{
		c, err := s.registrationSvc.FindByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotNil(c, "customer must be found")
		s.customerCacheMock.AssertCalled(s.T(), "Create", ctx, mock.AnythingOfType("*model.Customer"))
	}
}

func (s *registrationServiceTestSuite) TestUpsertNewCustomer() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(nil, nil).Once()
	s.customerRpsMock.On("Create", ctx, mock.AnythingOfType("*model.Customer")).Return(nil).Once()

	s.T().Log("customer is not present, so must be created")
	{
		_, err := s.registrationSvc.Upsert(ctx, customer)
		s.Assert().NoError(err, "no error must be raised")
		s.customerRpsMock.AssertNotCalled(s.T(), "Update", ctx, mock.AnythingOfType("*model.Customer"))
	}
}

func (s *registrationServiceTestSuite) TestUpsertUpdateCustomer() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerRpsMock.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	s.customerCacheMock.On("DeleteByID", ctx, customer.ID).Return(nil).Once()
	s.customerRpsMock.On("Update", ctx, mock.AnythingOfType("*model.Customer")).Return(nil).Once()

	s.T().Log("customer is present, so must be updated and evicted from cache")
	{
		_, err := s.registrationSvc.Upsert(ctx, customer)
		s.Assert().NoError(err, "no error must be raised")
		s.customerRpsMock.AssertNotCalled(s.T(), "Create", ctx, mock.AnythingOfType("*model.Customer"))
	}
}

func (s *registrationServiceTestSuite) TestDeleteByIDCacheFailed() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("DeleteByID", ctx, customer.ID).Return(errors.New("cache err")).Once()

	s.T().Log("delete customer from cache failed")
	{
		err := s.registrationSvc.DeleteByID(ctx, customer.ID)
		s.Assert().Error(err, "cache raised error - error must be raised up")
	}
}

func (s *registrationServiceTestSuite) TestDeleteByIDSuccessfully() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	s.customerCacheMock.On("DeleteByID", ctx, customer.ID).Return(nil).Once()
	s.customerRpsMock.On("DeleteByID", ctx, customer.ID).Return(nil).Once()

	s.T().Log("deleted successfully")
	{
		err := s.registrationSvc.DeleteByID(ctx, customer.ID)
		s.Assert().NoError(err, "no error must be raised")
		s.customerRpsMock.AssertCalled(s.T(), "DeleteByID", ctx, customer.ID)
	}
}

func (s *registrationServiceTestSuite) TestFindAllSuccessfully() {
	ctx := s.testData.ctx
	customer := s.testData.customer

	customers := []*model.Customer{
		customer,
	}

	s.customerRpsMock.On("FindAll", ctx).Return(customers, nil).Once()

	s.T().Log("customers must be found from data source")
	{
		_, err := s.registrationSvc.FindAll(ctx)
		s.Assert().NoError(err, "no error must be raised")
	}
}

func (s *registrationServiceTestSuite) TestImportCSVWithHeader() {
	ctx := s.testData.ctx

	content := strings.Join([]string{
		"id,nome,tipo,tempo,chegada",
		"c1,Ana,comum,5,0",
		"c2,Beto,corporativo,3,2",
	}, "\n")

	s.customerRpsMock.On("CreateAll", ctx, mock.AnythingOfType("[]*model.Customer")).Return(nil).Once()

	s.T().Log("header row must be skipped and both records registered")
	{
		n, err := s.registrationSvc.ImportCSV(ctx, strings.NewReader(content))
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(2, n, "both data records must be counted")
	}
}

func (s *registrationServiceTestSuite) TestImportCSVWithoutHeader() {
	ctx := s.testData.ctx

	content := "c1,Ana,comum,5,0\n"

	s.customerRpsMock.On("CreateAll", ctx, mock.AnythingOfType("[]*model.Customer")).Return(nil).Once()

	s.T().Log("content without header must be registered as-is")
	{
		n, err := s.registrationSvc.ImportCSV(ctx, strings.NewReader(content))
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(1, n, "single data record must be counted")
	}
}

func (s *registrationServiceTestSuite) TestImportCSVHeaderOnly() {
	ctx := s.testData.ctx

	s.T().Log("content with only a header row registers nothing")
	{
		n, err := s.registrationSvc.ImportCSV(ctx, strings.NewReader("id,nome,tipo,tempo,chegada\n"))
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Zero(n, "nothing must be counted")
		s.customerRpsMock.AssertNotCalled(s.T(), "CreateAll", ctx, mock.AnythingOfType("[]*model.Customer"))
	}
}

func (s *registrationServiceTestSuite) TestImportCSVMalformedRecord() {
	ctx := s.testData.ctx

	content := strings.Join([]string{
		"c1,Ana,comum,5,0",
		"c2,Beto,corporativo,oops,2",
	}, "\n")

	s.T().Log("malformed numeric column past the first row must fail the import")
	{
		_, err := s.registrationSvc.ImportCSV(ctx, strings.NewReader(content))
		s.Assert().Error(err, "error must be raised")
		s.customerRpsMock.AssertNotCalled(s.T(), "CreateAll", ctx, mock.AnythingOfType("[]*model.Customer"))
	}
}

// start registration service test suite
func TestRegistrationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(registrationServiceTestSuite))
}
