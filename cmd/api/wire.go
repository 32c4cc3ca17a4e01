//go:build wireinject
// +build wireinject

// Wire injector for the API server. Run `wire gen ./cmd/api` after adding
// a provider; main.go keeps a hand-written assembly of the same graph so
// the binary builds without the generated file.
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appauth "github.com/osantanna/livraria-pos/internal/application/auth"
	appbook "github.com/osantanna/livraria-pos/internal/application/book"
	appreport "github.com/osantanna/livraria-pos/internal/application/report"
	appsale "github.com/osantanna/livraria-pos/internal/application/sale"
	"github.com/osantanna/livraria-pos/internal/domain/book"
	"github.com/osantanna/livraria-pos/internal/infrastructure/config"
	"github.com/osantanna/livraria-pos/internal/infrastructure/persistence/mysql"
	"github.com/osantanna/livraria-pos/internal/infrastructure/persistence/redis"
	"github.com/osantanna/livraria-pos/internal/interface/http/handler"
	"github.com/osantanna/livraria-pos/internal/interface/http/middleware"
	"github.com/osantanna/livraria-pos/pkg/jwt"
	"github.com/osantanna/livraria-pos/pkg/mq"
)

var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewSaleRepository,
	mysql.NewTxManager,
)

var domainSet = wire.NewSet(
	book.NewService,
)

var applicationSet = wire.NewSet(
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewQueryBookUseCase,
	appsale.NewRegisterSaleUseCase,
	appsale.NewListSalesUseCase,
	appsale.NewGetSaleUseCase,
	appreport.NewPaymentReportUseCase,
	appreport.NewTopBooksUseCase,
	appreport.NewTotalsUseCase,
	appreport.NewDailySalesUseCase,
	appreport.NewVoucherSeducUseCase,
	provideLoginUseCase,
	appauth.NewLogoutUseCase,
	provideVerifyCourtesyUseCase,
)

var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideQueryCache,
	provideReportLocation,
	middleware.NewAuthMiddleware,
)

// interface bindings for the use case ports
var bindingSet = wire.NewSet(
	wire.Bind(new(appsale.Transactor), new(*mysql.TxManager)),
	wire.Bind(new(appsale.CacheInvalidator), new(*redis.QueryCache)),
	wire.Bind(new(appbook.CacheInvalidator), new(*redis.QueryCache)),
	wire.Bind(new(appbook.Cache), new(*redis.QueryCache)),
	wire.Bind(new(appreport.Cache), new(*redis.QueryCache)),
	provideEventPublisher,
)

// provideEventPublisher returns nil when no broker is configured; the use
// case treats a nil publisher as "publication disabled".
func provideEventPublisher(cfg *config.Config) appsale.EventPublisher {
	if cfg.MQ.URL == "" {
		return nil
	}
	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
	if err != nil {
		return nil
	}
	return p
}

var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewSaleHandler,
	handler.NewReportHandler,
	handler.NewAuthHandler,
)

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)
}

func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

func provideQueryCache(cfg *config.Config, client *goredis.Client) *redis.QueryCache {
	return redis.NewQueryCache(client, cfg.Report.CacheTTL)
}

func provideReportLocation(cfg *config.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Report.Timezone)
}

func provideLoginUseCase(cfg *config.Config, jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *appauth.LoginUseCase {
	return appauth.NewLoginUseCase(cfg.Admin.PasswordHash, jwtManager, sessionStore)
}

func provideVerifyCourtesyUseCase(cfg *config.Config) *appauth.VerifyCourtesyUseCase {
	return appauth.NewVerifyCourtesyUseCase(cfg.Admin.CourtesyHash)
}

func provideGinEngine(
	cfg *config.Config,
	bookHandler *handler.BookHandler,
	saleHandler *handler.SaleHandler,
	reportHandler *handler.ReportHandler,
	authHandler *handler.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())
	registerRoutes(r, bookHandler, saleHandler, reportHandler, authHandler, authMiddleware)
	return r
}

// InitializeApp builds the fully wired Gin engine.
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		bindingSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
