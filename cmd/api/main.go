package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/osantanna/livraria-pos/pkg/metrics"
	"github.com/osantanna/livraria-pos/pkg/mq"
	"github.com/osantanna/livraria-pos/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}

	log.Printf("configuration loaded (port=%d mode=%s db=%s:%d/%s redis=%s)",
		cfg.Server.Port, cfg.Server.Mode,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName,
		cfg.Redis.Addr())

	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("initializing database: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("initializing redis: %v", err)
	}

	reportLoc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		log.Fatalf("loading report timezone %q: %v", cfg.Report.Timezone, err)
	}

	metrics.InitMetrics()

	// event publication is optional: no broker URL, no publisher
	var publisher appsale.EventPublisher
	if cfg.MQ.URL != "" {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Printf("event publisher disabled: %v", err)
		} else {
			defer p.Close()
			publisher = p
		}
	}

	// infrastructure
	bookRepo := mysql.NewBookRepository(db)
	saleRepo := mysql.NewSaleRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	queryCache := redis.NewQueryCache(redisClient, cfg.Report.CacheTTL)
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpire, cfg.JWT.RefreshTokenExpire)

	// domain
	bookService := book.NewService(bookRepo)

	// application
	createBook := appbook.NewCreateBookUseCase(bookService, queryCache)
	updateBook := appbook.NewUpdateBookUseCase(bookService, queryCache)
	deleteBook := appbook.NewDeleteBookUseCase(bookRepo, saleRepo, queryCache)
	queryBook := appbook.NewQueryBookUseCase(bookService, queryCache)

	registerSale := appsale.NewRegisterSaleUseCase(saleRepo, bookRepo, txManager, publisher, queryCache)
	listSales := appsale.NewListSalesUseCase(saleRepo)
	getSale := appsale.NewGetSaleUseCase(saleRepo)

	byPayment := appreport.NewPaymentReportUseCase(saleRepo, queryCache, reportLoc)
	topBooks := appreport.NewTopBooksUseCase(saleRepo, queryCache)
	totals := appreport.NewTotalsUseCase(saleRepo, queryCache)
	daily := appreport.NewDailySalesUseCase(saleRepo, queryCache, reportLoc)
	voucher := appreport.NewVoucherSeducUseCase(saleRepo, queryCache, reportLoc)

	login := appauth.NewLoginUseCase(cfg.Admin.PasswordHash, jwtManager, sessionStore)
	logout := appauth.NewLogoutUseCase(jwtManager, sessionStore)
	verifyCourtesy := appauth.NewVerifyCourtesyUseCase(cfg.Admin.CourtesyHash)

	// interface
	bookHandler := handler.NewBookHandler(createBook, updateBook, deleteBook, queryBook)
	saleHandler := handler.NewSaleHandler(registerSale, listSales, getSale)
	reportHandler := handler.NewReportHandler(byPayment, topBooks, totals, daily, voucher)
	authHandler := handler.NewAuthHandler(login, logout, verifyCourtesy)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	registerRoutes(r, bookHandler, saleHandler, reportHandler, authHandler, authMiddleware)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("serving: %v", err)
	}
}

func registerRoutes(
	r *gin.Engine,
	bookHandler *handler.BookHandler,
	saleHandler *handler.SaleHandler,
	reportHandler *handler.ReportHandler,
	authHandler *handler.AuthHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authMiddleware.RequireAdmin(), authHandler.Logout)
			auth.POST("/verify-cortesia", authHandler.VerifyCourtesy)
		}

		livros := v1.Group("/livros")
		{
			livros.GET("", bookHandler.ListBooks)
			livros.GET("/:id", bookHandler.GetBook)
			livros.GET("/codigo/:codigo", bookHandler.GetBookByBarcode)
			livros.POST("", bookHandler.CreateBook)
			livros.PUT("/:id", bookHandler.UpdateBook)

			// deletion is destructive: admin only
			livros.DELETE("/:id", authMiddleware.RequireAdmin(), bookHandler.DeleteBook)
		}

		vendas := v1.Group("/vendas")
		{
			vendas.POST("", saleHandler.RegisterSale)
			vendas.GET("", saleHandler.ListSales)
			vendas.GET("/:id", saleHandler.GetSale)
		}

		relatorios := v1.Group("/relatorios")
		{
			relatorios.GET("/por-pagamento", reportHandler.ByPayment)
			relatorios.GET("/top-livros", reportHandler.TopBooks)
			relatorios.GET("/totais-gerais", reportHandler.Totals)
			relatorios.GET("/por-dia-vendas", reportHandler.Daily)
			relatorios.GET("/voucher-seduc", reportHandler.VoucherSeduc)
		}
	}
}
