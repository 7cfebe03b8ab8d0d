package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rmaciel/atendimento/internal/config"
	"github.com/rmaciel/atendimento/internal/model"
	"github.com/rmaciel/atendimento/internal/service"
)

type session struct {
	Token        string `json:"accessToken"`
	ExpiresAt    int64  `json:"expiresAt"`
	RefreshToken string `json:"refreshToken"`
}

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=24"`
}

type login struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	Fingerprint string `json:"fingerprint" validate:"required"`
}

type logout struct {
	RefreshToken string `json:"refreshToken" validate:"required,uuid"`
}

type refresh struct {
	Fingerprint  string `json:"fingerprint" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required,uuid"`
}

type newUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthHTTPHandler is http handler for auth endpoint
type AuthHTTPHandler struct {
	authSvc service.AuthService
}

// NewAuthHTTPHandler builds new AuthHTTPHandler
func NewAuthHTTPHandler(authSvc service.AuthService) *AuthHTTPHandler {
	return &AuthHTTPHandler{authSvc: authSvc}
}

// Signup registers new api user based on provided credentials
func (h *AuthHTTPHandler) Signup(c echo.Context) error {
	var su signup
	if err := c.Bind(&su); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&su); err != nil {
		return err
	}

	nu, err := h.authSvc.Signup(c.Request().Context(), su.Email, su.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &newUser{
		ID:    nu.ID,
		Email: nu.Email,
	})
}

// Login verifies provided credentials, signs auth and refresh token
func (h *AuthHTTPHandler) Login(c echo.Context) error {
	var lgn login
	if err := c.Bind(&lgn); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&lgn); err != nil {
		return err
	}

	jwt, rfrToken, err := h.authSvc.Login(c.Request().Context(), lgn.Email, lgn.Password, lgn.Fingerprint, time.Now().UTC())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &session{
		Token:        jwt.Signed,
		ExpiresAt:    jwt.ExpiresAt,
		RefreshToken: rfrToken.ID,
	})
}

// Logout removes user session data
func (h *AuthHTTPHandler) Logout(c echo.Context) error {
	var lgt logout
	if err := c.Bind(&lgt); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&lgt); err != nil {
		return err
	}

	if err := h.authSvc.Logout(c.Request().Context(), lgt.RefreshToken); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Refresh signs new auth and refresh token
func (h *AuthHTTPHandler) Refresh(c echo.Context) error {
	var r refresh
	if err := c.Bind(&r); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&r); err != nil {
		return err
	}

	jwt, rfrToken, err := h.authSvc.Refresh(c.Request().Context(), r.RefreshToken, r.Fingerprint, time.Now().UTC())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &session{
		Token:        jwt.Signed,
		ExpiresAt:    jwt.ExpiresAt,
		RefreshToken: rfrToken.ID,
	})
}

type identifier struct {
	ID string `json:"id" validate:"required"`
}

// registration record of the form contract, arrival comes as free text and
// its format is owned by this service
type newCustomer struct {
	ID          string  `json:"id"`
	Name        string  `json:"nome" validate:"required"`
	Type        string  `json:"tipo" validate:"required"`
	ServiceTime float64 `json:"tempo" validate:"gte=0"`
	Arrival     string  `json:"chegada" validate:"required,numeric"`
}

type updateCustomer struct {
	ID string `param:"id" validate:"required"`
	newCustomer
}

type importSummary struct {
	Imported int `json:"importados"`
}

// RegistrationHTTPHandler is http handler for customer registration endpoint
type RegistrationHTTPHandler struct {
	registrationSvc service.RegistrationService
}

// NewRegistrationHTTPHandler builds new RegistrationHTTPHandler
func NewRegistrationHTTPHandler(registrationSvc service.RegistrationService) *RegistrationHTTPHandler {
	return &RegistrationHTTPHandler{registrationSvc: registrationSvc}
}

// Register registers new customer for future processing
func (h *RegistrationHTTPHandler) Register(c echo.Context) error {
	var nc newCustomer
	if err := c.Bind(&nc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&nc); err != nil {
		return err
	}

	customer, err := customerFromPayload(nc.ID, nc)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.registrationSvc.Create(c.Request().Context(), customer)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// Get returns single customer with provided id
func (h *RegistrationHTTPHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	customer, err := h.registrationSvc.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	if customer == nil {
		return echo.NewHTTPError(http.StatusNotFound, "customer not found")
	}
	return c.JSON(http.StatusOK, customer)
}

// GetAll returns all registered customers
func (h *RegistrationHTTPHandler) GetAll(c echo.Context) error {
	customers, err := h.registrationSvc.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}

// Put updates customer or registers new one if not exist
func (h *RegistrationHTTPHandler) Put(c echo.Context) error {
	var uc updateCustomer
	if err := c.Bind(&uc); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&uc); err != nil {
		return err
	}

	customer, err := customerFromPayload(uc.ID, uc.newCustomer)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.registrationSvc.Upsert(c.Request().Context(), customer)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteByID deletes customer with provided id
func (h *RegistrationHTTPHandler) DeleteByID(c echo.Context) error {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return err
	}

	if err := h.registrationSvc.DeleteByID(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ImportCSV registers all customers of the uploaded CSV file
func (h *RegistrationHTTPHandler) ImportCSV(c echo.Context) error {
	fileHdr, err := c.FormFile("arquivo")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	file, err := fileHdr.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer file.Close()

	imported, err := h.registrationSvc.ImportCSV(c.Request().Context(), file)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, &importSummary{Imported: imported})
}

func customerFromPayload(id string, nc newCustomer) (*model.Customer, error) {
	arrival, err := strconv.ParseFloat(nc.Arrival, 64)
	if err != nil {
		return nil, err
	}

	return &model.Customer{
		ID:          id,
		Name:        nc.Name,
		Type:        model.CustomerType(nc.Type).Normalized(),
		ServiceTime: nc.ServiceTime,
		Arrival:     arrival,
	}, nil
}

type runParams struct {
	Structure   string `query:"estrutura" validate:"omitempty,oneof=lista prioridade"`
	Algorithm   string `query:"algoritmo" validate:"omitempty,oneof=merge quick"`
	ReorderRule string `query:"reordenacao" validate:"omitempty,oneof=por_prioridade por_chegada"`
	RecordUndo  string `query:"desfazer" validate:"omitempty,oneof=true false"`
}

type runSummary struct {
	ReportID    string           `json:"id"`
	GeneratedAt time.Time        `json:"gerado_em"`
	Statistics  model.Statistics `json:"estatisticas"`
}

type undoneService struct {
	Customer model.ServedCustomer `json:"cliente"`
	Message  string               `json:"mensagem"`
}

// SimulationHTTPHandler is http handler for processing and statistics
// endpoints
type SimulationHTTPHandler struct {
	simulationSvc service.SimulationService
	defaults      config.SimulationCfg
}

// NewSimulationHTTPHandler builds new SimulationHTTPHandler
func NewSimulationHTTPHandler(simulationSvc service.SimulationService, defaults config.SimulationCfg) *SimulationHTTPHandler {
	return &SimulationHTTPHandler{simulationSvc: simulationSvc, defaults: defaults}
}

// Process runs the queue simulation over all registered customers. Run
// parameters fall back to configured defaults when not provided.
func (h *SimulationHTTPHandler) Process(c echo.Context) error {
	var rp runParams
	if err := c.Bind(&rp); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := c.Validate(&rp); err != nil {
		return err
	}

	report, err := h.simulationSvc.Process(c.Request().Context(), h.paramsWithDefaults(rp))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &runSummary{
		ReportID:    report.ID,
		GeneratedAt: report.GeneratedAt,
		Statistics:  report.Statistics,
	})
}

// Statistics returns statistics of the latest simulation run
func (h *SimulationHTTPHandler) Statistics(c echo.Context) error {
	stats, err := h.simulationSvc.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Report returns the latest simulation report rendered as plain text
func (h *SimulationHTTPHandler) Report(c echo.Context) error {
	text, err := h.simulationSvc.ReportText(c.Request().Context())
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, text)
}

// Undo removes the most recently served customer from the latest report
func (h *SimulationHTTPHandler) Undo(c echo.Context) error {
	undone, err := h.simulationSvc.UndoLastService(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &undoneService{
		Customer: *undone,
		Message:  "atendimento desfeito",
	})
}

func (h *SimulationHTTPHandler) paramsWithDefaults(rp runParams) model.RunParams {
	params := model.RunParams{
		Structure:   h.defaults.Structure,
		Algorithm:   h.defaults.Algorithm,
		ReorderRule: h.defaults.ReorderRule,
		RecordUndo:  h.defaults.RecordUndo,
	}

	if rp.Structure != "" {
		params.Structure = rp.Structure
	}
	if rp.Algorithm != "" {
		params.Algorithm = rp.Algorithm
	}
	if rp.ReorderRule != "" {
		params.ReorderRule = rp.ReorderRule
	}
	if rp.RecordUndo != "" {
		params.RecordUndo = rp.RecordUndo == "true"
	}
	return params
}
