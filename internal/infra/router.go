package infra

import (
	"errors"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rmaciel/atendimento/internal/auth"
	"github.com/rmaciel/atendimento/internal/cache"
	"github.com/rmaciel/atendimento/internal/config"
	apperrors "github.com/rmaciel/atendimento/internal/errors"
	"github.com/rmaciel/atendimento/internal/handlers"
	"github.com/rmaciel/atendimento/internal/middleware"
	"github.com/rmaciel/atendimento/internal/repository"
	"github.com/rmaciel/atendimento/internal/service"
	"github.com/rmaciel/atendimento/internal/validation"
	"github.com/rmaciel/atendimento/pkg/db/transactor"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

const mongoCustomerStore = "mongo"

// Router wires application dependencies and routes
func Router(pgPool *pgxpool.Pool, mongoClient *mongo.Client, redisClient *redis.Client, cfg config.Config) (*echo.Echo, error) {
	e := echo.New()
	e.HTTPErrorHandler = errorHandler(e)

	v, err := echoValidator()
	if err != nil {
		return nil, err
	}
	e.Validator = v

	// Transactors
	trx := transactor.NewPgxTransactor(pgPool)

	// Configs
	jwtCfg := cfg.AuthCfg.JwtCfg
	rfrTokenCfg := cfg.AuthCfg.RefreshTokenCfg

	// Extra functionality
	jwtIssuer := auth.NewJwtIssuer(jwtCfg.Issuer, jwtCfg.SigningMethod, jwtCfg.TimeToLive, jwtCfg.PrivateKey)
	jwtValidator := auth.NewJwtValidator(jwtCfg.SigningMethod, jwtCfg.PublicKey)

	// Middleware
	authorizeMw := middleware.Authorize(jwtValidator)

	// Repositories
	userRepo := repository.NewPostgresUserRepository(trx)
	rfrTokenRepo := repository.NewPostgresRefreshTokenRepository(trx)
	reportRepo := repository.NewPostgresReportRepository(trx)

	customerRepo := repository.NewPostgresCustomerRepository(pgPool)
	if cfg.SimulationCfg.CustomerStore == mongoCustomerStore {
		customerRepo = repository.NewMongoCustomerRepository(mongoClient)
	}

	// Caches
	customerCache := cache.NewRedisCustomerCacheRepository(redisClient)
	statsCache := cache.NewRedisStatisticsCacheRepository(redisClient)

	// Services
	authSvc := service.NewAuthService(jwtIssuer, &rfrTokenCfg, trx, userRepo, rfrTokenRepo)
	registrationSvc := service.NewRegistrationService(customerRepo, customerCache)
	simulationSvc := service.NewSimulationService(trx, customerRepo, reportRepo, statsCache)

	// Handlers
	authHandler := handlers.NewAuthHTTPHandler(authSvc)
	registrationHandler := handlers.NewRegistrationHTTPHandler(registrationSvc)
	simulationHandler := handlers.NewSimulationHTTPHandler(simulationSvc, cfg.SimulationCfg)

	// contract surface of the registration form
	e.POST("/cadastrar", registrationHandler.Register)
	e.GET("/processar", simulationHandler.Process)
	e.GET("/estatisticas", simulationHandler.Statistics)

	api := e.Group("/api")

	// auth
	authAPI := api.Group("/auth")
	authAPI.POST("/signup", authHandler.Signup)
	authAPI.POST("/login", authHandler.Login)
	authAPI.POST("/logout", authHandler.Logout)
	authAPI.POST("/refresh", authHandler.Refresh)

	// admin surface
	v1 := api.Group("/v1", authorizeMw)

	customersAPI := v1.Group("/clientes")
	customersAPI.GET("", registrationHandler.GetAll)
	customersAPI.GET("/:id", registrationHandler.Get)
	customersAPI.PUT("/:id", registrationHandler.Put)
	customersAPI.DELETE("/:id", registrationHandler.DeleteByID)
	customersAPI.POST("/importar", registrationHandler.ImportCSV)

	v1.GET("/estatisticas/relatorio", simulationHandler.Report)
	v1.POST("/atendimentos/desfazer", simulationHandler.Undo)

	return e, nil
}

func echoValidator() (*validation.EchoValidator, error) {
	validate := validator.New()

	english := en.New()
	translator, found := ut.New(english, english).GetTranslator("en")
	if !found {
		return nil, errors.New("failed to find en translator")
	}

	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	return validation.Echo(validate, translator), nil
}

func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		logrus.Errorf("error occurred on request processing - %v", err)

		var businessErr *apperrors.BusinessErr
		if errors.As(err, &businessErr) {
			if err := c.JSON(http.StatusBadRequest, businessErr); err == nil {
				return
			}
		}

		var notFoundErr *apperrors.EntryNotFoundErr
		if errors.As(err, &notFoundErr) {
			err = echo.NewHTTPError(http.StatusNotFound, notFoundErr.Error())
		}

		var payloadErr *validation.PayloadError
		if errors.As(err, &payloadErr) {
			if err := c.JSON(http.StatusBadRequest, payloadErr); err == nil {
				return
			}
		}

		// unwrap http errors raised deeper in the call chain
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			err = httpErr
		}

		e.DefaultHTTPErrorHandler(err, c)
	}
}
