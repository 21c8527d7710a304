package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/gift-api/docs"
	v1 "github.com/vietanh2810/gift-api/internal/api/handler/v1"
	"github.com/vietanh2810/gift-api/internal/api/middleware"
	"github.com/vietanh2810/gift-api/internal/config"
	"github.com/vietanh2810/gift-api/internal/metrics"
	"github.com/vietanh2810/gift-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/gift-api/internal/pkg/kakao"
	"github.com/vietanh2810/gift-api/internal/repository"
	"github.com/vietanh2810/gift-api/internal/repository/cache"
	"github.com/vietanh2810/gift-api/internal/repository/dao"
	"github.com/vietanh2810/gift-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	// Notifier is nil when notifications are disabled. Its workers are started
	// by the caller.
	Notifier *service.Notifier

	metrics *metrics.Metrics
	codec   *jwthelper.Codec
}

func NewServer(conf *config.AppConfig, db *gorm.DB, rdb *redis.Client, m *metrics.Metrics) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:  conf,
		Router:  engine,
		metrics: m,
		codec:   jwthelper.NewCodec([]byte(conf.API.JWTSigningKey), conf.API.JWTTTL),
	}

	if conf.Notification != nil && conf.Notification.Enabled {
		client := kakao.NewClient(conf.Notification.BaseURL, conf.API.BaseURL, nil)
		s.Notifier = service.NewNotifier(client, conf.Notification.Workers, conf.Notification.QueueSize,
			conf.Notification.Timeout, m)
	}

	memberRepo := repository.NewMemberRepository(dao.NewMemberDAO(db))
	catalogRepo := repository.NewCatalogRepository(dao.NewCatalogDAO(db))

	s.MountMiddlewares()

	authHandler := v1.NewAuthHandler(service.NewAuthService(memberRepo, s.codec))
	memberHandler := v1.NewMemberHandler(service.NewMemberService(memberRepo))
	catalogHandler := v1.NewCatalogHandler(service.NewCatalogService(catalogRepo))
	wishHandler := s.initWishHandler(db, catalogRepo)
	orderHandler := s.initOrderHandler(db, rdb, memberRepo, catalogRepo)
	authenticator := middleware.NewAuthenticator(service.NewIdentityGate(s.codec, memberRepo))

	s.MountHandlers(authenticator, authHandler, memberHandler, catalogHandler, wishHandler, orderHandler)

	return s
}

func (s *Server) initWishHandler(db *gorm.DB, catalogRepo *repository.CatalogRepository) *v1.WishHandler {
	repo := repository.NewWishRepository(dao.NewWishDAO(db))
	svc := service.NewWishService(repo, catalogRepo)

	return v1.NewWishHandler(svc)
}

func (s *Server) initOrderHandler(
	db *gorm.DB,
	rdb *redis.Client,
	memberRepo *repository.MemberRepository,
	catalogRepo *repository.CatalogRepository,
) *v1.OrderHandler {
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(db))

	var ttl time.Duration
	if s.Config.Order != nil {
		ttl = s.Config.Order.IdempotencyTTL
	}
	guard := cache.NewIdempotencyGuard(rdb, ttl)

	var sink service.NotificationSink = service.NopSink{}
	if s.Notifier != nil {
		sink = s.Notifier
	}

	svc := service.NewOrderService(catalogRepo, memberRepo, orderRepo, sink, guard, s.metrics)

	return v1.NewOrderHandler(svc)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authenticator *middleware.Authenticator,
	authHandler *v1.AuthHandler,
	memberHandler *v1.MemberHandler,
	catalogHandler *v1.CatalogHandler,
	wishHandler *v1.WishHandler,
	orderHandler *v1.OrderHandler,
) {
	const basePath = "/api"

	public := s.Router.Group(basePath)
	{
		public.POST("/members/register", authHandler.HandleRegister)
		public.POST("/members/login", authHandler.HandleLogin)

		public.GET("/categories", catalogHandler.HandleGetCategories)
		public.POST("/categories", catalogHandler.HandleCreateCategory)
		public.PUT("/categories/:categoryId", catalogHandler.HandleUpdateCategory)
		public.DELETE("/categories/:categoryId", catalogHandler.HandleDeleteCategory)

		public.GET("/products", catalogHandler.HandleGetProducts)
		public.GET("/products/:productId", catalogHandler.HandleGetProduct)
		public.POST("/products", catalogHandler.HandleCreateProduct)
		public.PUT("/products/:productId", catalogHandler.HandleUpdateProduct)
		public.DELETE("/products/:productId", catalogHandler.HandleDeleteProduct)

		public.GET("/products/:productId/options", catalogHandler.HandleGetOptions)
		public.GET("/products/:productId/options/:optionId", catalogHandler.HandleGetOption)
		public.POST("/products/:productId/options", catalogHandler.HandleCreateOption)
		public.DELETE("/products/:productId/options/:optionId", catalogHandler.HandleDeleteOption)
	}

	members := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		members.GET("/members/me", memberHandler.HandleGetMe)
		members.PUT("/members/me", memberHandler.HandleUpdateMe)
		members.DELETE("/members/me", memberHandler.HandleDeleteMe)
		members.POST("/members/me/points", memberHandler.HandleChargePoint)
		members.PUT("/members/me/kakao", memberHandler.HandleLinkKakao)

		members.GET("/wishes", wishHandler.HandleGetWishes)
		members.POST("/wishes", wishHandler.HandleAddWish)
		members.DELETE("/wishes/:wishId", wishHandler.HandleRemoveWish)

		members.POST("/orders", orderHandler.HandleCreateOrder)
		members.GET("/orders", orderHandler.HandleGetOrders)
		members.GET("/orders/:orderId", orderHandler.HandleGetOrder)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Gift API"
	docs.SwaggerInfo.Description = "Gift catalog, wishlist and order API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
