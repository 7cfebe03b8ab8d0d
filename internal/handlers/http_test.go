package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rmaciel/atendimento/internal/config"
	"github.com/rmaciel/atendimento/internal/model"
	"github.com/rmaciel/atendimento/internal/service/mocks"
	"github.com/rmaciel/atendimento/internal/validation"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

var simulationDefaults = config.SimulationCfg{
	Structure:   model.StructureList,
	Algorithm:   model.AlgorithmMerge,
	ReorderRule: model.ReorderByPriority,
}

type httpHandlersTestSuite struct {
	suite.Suite
	app              *echo.Echo
	registrationMock *mocks.RegistrationService
	simulationMock   *mocks.SimulationService
	registrationHdlr *RegistrationHTTPHandler
	simulationHdlr   *SimulationHTTPHandler
}

func (s *httpHandlersTestSuite) SetupSuite() {
	enLocale := en.New()
	unvTranslator := ut.New(enLocale, enLocale)
	trans, ok := unvTranslator.GetTranslator("en")
	if !ok {
		s.Require().Fail("failed to build echo validator because of missing en translations")
	}

	s.app = echo.New()
	s.app.Validator = validation.Echo(validator.New(), trans)
}

func (s *httpHandlersTestSuite) SetupTest() {
	t := s.T()
	s.registrationMock = mocks.NewRegistrationService(t)
	s.simulationMock = mocks.NewSimulationService(t)
	s.registrationHdlr = NewRegistrationHTTPHandler(s.registrationMock)
	s.simulationHdlr = NewSimulationHTTPHandler(s.simulationMock, simulationDefaults)
}

//nolint:funlen // function contains a lot of inlined tests
func (s *httpHandlersTestSuite) TestRegister() {
	t := s.T()
	require := s.Require()

	t.Log("register customer with wrong payload")
	{
		wrongPayloadJSON := `{"id":"c1","nome":"An`
		c, _ := s.echoPostContext("/cadastrar", wrongPayloadJSON)
		err := s.registrationHdlr.Register(c)
		require.Error(err, "wrong payload has been provided but no error raised")
		require.IsType(&echo.HTTPError{}, err, "error must be echo error")
	}

	t.Log("register customer with invalid data in payload")
	{
		invalidJSON := `{"id":"c1","nome":"","tipo":"comum","tempo":5,"chegada":"0"}`
		c, _ := s.echoPostContext("/cadastrar", invalidJSON)
		err := s.registrationHdlr.Register(c)
		require.Error(err, "wrong data in payload has been provided but no error raised")
		require.IsType(&validation.PayloadError{}, err, "error must be payload error")
	}

	t.Log("register customer with non-numeric arrival")
	{
		invalidJSON := `{"id":"c1","nome":"Ana","tipo":"comum","tempo":5,"chegada":"logo"}`
		c, _ := s.echoPostContext("/cadastrar", invalidJSON)
		err := s.registrationHdlr.Register(c)
		require.Error(err, "non-numeric arrival has been provided but no error raised")
		require.IsType(&validation.PayloadError{}, err, "error must be payload error")
	}

	t.Log("register customer successfully")
	{
		s.registrationMock.On("Create", mock.Anything, mock.AnythingOfType("*model.Customer")).
			Return(func(_ context.Context, c *model.Customer) *model.Customer { return c }, nil).Once()

		registerJSON := `{"id":"c1","nome":"Ana","tipo":"comum","tempo":5,"chegada":"2.5"}`
		c, rec := s.echoPostContext("/cadastrar", registerJSON)
		err := s.registrationHdlr.Register(c)
		require.NoError(err, "no error must be raised")
		require.Equal(http.StatusCreated, rec.Code, "response code must be Created")

		var created model.Customer
		require.NoError(json.NewDecoder(rec.Body).Decode(&created), "failed to parse customer from response")
		require.Equal("c1", created.ID, "identifier must be kept")
		require.Equal(2.5, created.Arrival, "arrival must be parsed from text")
	}

	t.Log("register customer with mixed-case type")
	{
		s.registrationMock.On("Create", mock.Anything, mock.AnythingOfType("*model.Customer")).
			Return(func(_ context.Context, c *model.Customer) *model.Customer { return c }, nil).Once()

		registerJSON := `{"id":"c2","nome":"Beto","tipo":"Corporativo","tempo":3,"chegada":"1"}`
		c, rec := s.echoPostContext("/cadastrar", registerJSON)
		err := s.registrationHdlr.Register(c)
		require.NoError(err, "no error must be raised")

		var created model.Customer
		require.NoError(json.NewDecoder(rec.Body).Decode(&created), "failed to parse customer from response")
		require.Equal(model.TypeCorporate, created.Type, "type must be lowercased on registration")
	}
}

func (s *httpHandlersTestSuite) TestGet() {
	t := s.T()
	require := s.Require()

	customer := &model.Customer{ID: "c1", Name: "Ana", Type: model.TypeRegular, ServiceTime: 5}

	t.Log("get customer by id successfully")
	{
		s.registrationMock.On("FindByID", mock.Anything, customer.ID).Return(customer, nil).Once()

		c, rec := s.echoGetContext(fmt.Sprintf("/api/v1/clientes/%s", customer.ID))
		c.SetParamNames("id")
		c.SetParamValues(customer.ID)
		err := s.registrationHdlr.Get(c)
		require.NoError(err, "no error must be raised")
		require.Equal(http.StatusOK, rec.Code, "response status must be OK")
	}

	t.Log("get missing customer by id")
	{
		s.registrationMock.On("FindByID", mock.Anything, "absent").Return(nil, nil).Once()

		c, _ := s.echoGetContext("/api/v1/clientes/absent")
		c.SetParamNames("id")
		c.SetParamValues("absent")
		err := s.registrationHdlr.Get(c)
		require.Error(err, "customer is missing but no error raised")
		require.IsType(&echo.HTTPError{}, err, "error must be echo error")
	}
}

func (s *httpHandlersTestSuite) TestPut() {
	t := s.T()
	require := s.Require()

	t.Log("put customer successfully")
	{
		s.registrationMock.On("Upsert", mock.Anything, mock.AnythingOfType("*model.Customer")).
			Return(func(_ context.Context, c *model.Customer) *model.Customer { return c }, nil).Once()

		putJSON := `{"nome":"Ana","tipo":"preferencial","tempo":3,"chegada":"1"}`
		c, rec := s.echoPutContext("/api/v1/clientes/c1", "c1", putJSON)
		err := s.registrationHdlr.Put(c)
		require.NoError(err, "no error must be raised")
		require.Equal(http.StatusOK, rec.Code, "response code must be OK")
	}
}

func (s *httpHandlersTestSuite) TestDeleteByID() {
	t := s.T()
	require := s.Require()

	t.Log("delete customer by id")
	{
		s.registrationMock.On("DeleteByID", mock.Anything, "c1").Return(nil).Once()

		c, rec := s.echoDeleteContext("/api/v1/clientes", "c1")
		err := s.registrationHdlr.DeleteByID(c)
		require.NoError(err, "no error must be raised")
		require.Equal(http.StatusNoContent, rec.Code, "response status must be No Content")
	}
}

func (s *httpHandlersTestSuite) TestImportCSV() {
	t := s.T()
	require := s.Require()

	t.Log("import customers from uploaded csv file")
	{
		s.registrationMock.On("ImportCSV", mock.Anything, mock.Anything).Return(2, nil).Once()

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		part, err := writer.CreateFormFile("arquivo", "clientes.csv")
		require.NoError(err, "failed to build multipart form")
		_, err = part.Write([]byte("c1,Ana,comum,5,0\nc2,Beto,corporativo,3,2\n"))
		require.NoError(err, "failed to write csv content")
		require.NoError(writer.Close(), "failed to finish multipart form")

		req := httptest.NewRequest(http.MethodPost, "/api/v1/clientes/importar", &body)
		req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
		rec := httptest.NewRecorder()
		c := s.app.NewContext(req, rec)

		err = s.registrationHdlr.ImportCSV(c)
		require.NoError(err, "no error must be raised")
		require.Equal(http.StatusCreated, rec.Code, "response code must be Created")

		var summary importSummary
		require.NoError(json.NewDecoder(rec.Body).Decode(&summary), "failed to parse summary from response")
		require.Equal(2, summary.Imported, "both records must be counted")
	}

	t.Log("import without uploaded file")
	{
		c, _ := s.echoPostContext("/api/v1/clientes/importar", "")
		err := s.registrationHdlr.ImportCSV(c)
		require.Error(err, "no file was uploaded but no error raised")
		require.IsType(&echo.HTTPError{}, err, "error must be echo error")
	}
}

//nolint:funlen // function contains a lot of inlined tests
func (s *httpHandlersTestSuite) TestProcess() {
	t := s.T()
	require := s.Require()

	report := &model.Report{
		ID:          "5d8dfebe-0ca1-42d0-9ae8-b08181b80061",
		GeneratedAt: time.Now().UTC(),
		Statistics:  model.Statistics{Served: 1, Structure: model.StructureList},
	}

	t.Log("process with configured defaults")
	{
		s.simulationMock.On("Process", mock.Anything, model.RunParams{
			Structure:   model.StructureList,
			Algorithm:   model.AlgorithmMerge,
			ReorderRule: model.ReorderByPriority,
		}).Return(report, nil).Once()

		c, rec := s.echoGetContext("/processar")
		err := s.simulationHdlr.Process(c)
		require.NoError(err, "no error must be raised")
		require.Equal(http.StatusOK, rec.Code, "response status must be OK")
	}

	t.Log("process with overridden run parameters")
	{
		s.simulationMock.On("Process", mock.Anything, model.RunParams{
			Structure:   model.StructureHeap,
			Algorithm:   model.AlgorithmQuick,
			ReorderRule: model.ReorderByPriority,
			RecordUndo:  true,
		}).Return(report, nil).Once()

		c, rec := s.echoGetContext("/processar?estrutura=prioridade&algoritmo=quick&desfazer=true")
		err := s.simulationHdlr.Process(c)
		require.NoError(err, "no error must be raised")
		require.Equal(http.StatusOK, rec.Code, "response status must be OK")
	}

	t.Log("process with invalid structure name")
	{
		c, _ := s.echoGetContext("/processar?estrutura=arvore")
		err := s.simulationHdlr.Process(c)
		require.Error(err, "invalid structure has been provided but no error raised")
		require.IsType(&validation.PayloadError{}, err, "error must be payload error")
		s.simulationMock.AssertNotCalled(t, "Process", mock.Anything, mock.AnythingOfType("model.RunParams"))
	}
}

func (s *httpHandlersTestSuite) TestStatistics() {
	t := s.T()
	require := s.Require()

	stats := &model.Statistics{
		Served:           2,
		TotalWait:        9,
		MeanWait:         4.5,
		TotalServiceTime: 15,
		Structure:        model.StructureList,
		Algorithm:        model.AlgorithmMerge,
		ReorderRule:      model.ReorderByPriority,
		ComplexityHint:   "O(n log n)",
	}

	t.Log("statistics of latest run returned as json")
	{
		s.simulationMock.On("Statistics", mock.Anything).Return(stats, nil).Once()

		c, rec := s.echoGetContext("/estatisticas")
		err := s.simulationHdlr.Statistics(c)
		require.NoError(err, "no error must be raised")
		require.Equal(http.StatusOK, rec.Code, "response status must be OK")

		payload := make(map[string]any)
		require.NoError(json.NewDecoder(rec.Body).Decode(&payload), "failed to parse statistics from response")
		require.Equal(float64(2), payload["n_atendidos"], "served count must be rendered")
		require.Equal("lista", payload["estrutura"], "structure must be rendered")
	}
}

func (s *httpHandlersTestSuite) TestReport() {
	t := s.T()
	require := s.Require()

	t.Log("rendered report returned as plain text")
	{
		s.simulationMock.On("ReportText", mock.Anything).
			Return("Relatório de Simulação - Fila de Atendimento\n", nil).Once()

		c, rec := s.echoGetContext("/api/v1/estatisticas/relatorio")
		err := s.simulationHdlr.Report(c)
		require.NoError(err, "no error must be raised")
		require.Equal(http.StatusOK, rec.Code, "response status must be OK")
		require.Contains(rec.Body.String(), "Relatório de Simulação", "report text must be rendered")
	}
}

func (s *httpHandlersTestSuite) TestUndo() {
	t := s.T()
	require := s.Require()

	undone := &model.ServedCustomer{
		Customer:     model.Customer{ID: "c2", Name: "Bia", Type: model.TypeRegular, ServiceTime: 5, Arrival: 1},
		ServiceStart: 10,
		ServiceEnd:   15,
	}

	t.Log("most recent service undone")
	{
		s.simulationMock.On("UndoLastService", mock.Anything).Return(undone, nil).Once()

		c, rec := s.echoPostContext("/api/v1/atendimentos/desfazer", "")
		err := s.simulationHdlr.Undo(c)
		require.NoError(err, "no error must be raised")
		require.Equal(http.StatusOK, rec.Code, "response status must be OK")
	}
}

func (s *httpHandlersTestSuite) echoPostContext(target, payload string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return s.app.NewContext(req, rec), rec
}

func (s *httpHandlersTestSuite) echoGetContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, strings.NewReader(""))
	rec := httptest.NewRecorder()
	return s.app.NewContext(req, rec), rec
}

func (s *httpHandlersTestSuite) echoDeleteContext(target, id string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodDelete, target, strings.NewReader(""))
	rec := httptest.NewRecorder()
	c := s.app.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func (s *httpHandlersTestSuite) echoPutContext(target, id, payload string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.app.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

// start http handlers test suite
func TestHTTPHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(httpHandlersTestSuite))
}
