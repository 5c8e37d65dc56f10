package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"storefront-backend/internal/config"
	infraCache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/internal/infrastructure/messaging"
	"storefront-backend/internal/infrastructure/storage"
	"storefront-backend/pkg/cache"
	pkgdb "storefront-backend/pkg/database"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/logger"

	addressHandler "storefront-backend/internal/domains/address/handler"
	addressRepo "storefront-backend/internal/domains/address/repository"
	addressService "storefront-backend/internal/domains/address/service"
	cartHandler "storefront-backend/internal/domains/cart/handler"
	cartRepo "storefront-backend/internal/domains/cart/repository"
	cartService "storefront-backend/internal/domains/cart/service"
	catalogHandler "storefront-backend/internal/domains/catalog/handler"
	catalogRepo "storefront-backend/internal/domains/catalog/repository"
	catalogService "storefront-backend/internal/domains/catalog/service"
	couponHandler "storefront-backend/internal/domains/coupon/handler"
	couponRepo "storefront-backend/internal/domains/coupon/repository"
	couponService "storefront-backend/internal/domains/coupon/service"
	orderHandler "storefront-backend/internal/domains/order/handler"
	orderRepo "storefront-backend/internal/domains/order/repository"
	orderService "storefront-backend/internal/domains/order/service"
	otpHandler "storefront-backend/internal/domains/otp/handler"
	otpService "storefront-backend/internal/domains/otp/service"
	"storefront-backend/internal/domains/payment/gateway/razorpay"
	paymentHandler "storefront-backend/internal/domains/payment/handler"
	paymentService "storefront-backend/internal/domains/payment/service"
	userHandler "storefront-backend/internal/domains/user/handler"
	userRepo "storefront-backend/internal/domains/user/repository"
	userService "storefront-backend/internal/domains/user/service"
	walletHandler "storefront-backend/internal/domains/wallet/handler"
	walletRepo "storefront-backend/internal/domains/wallet/repository"
	walletService "storefront-backend/internal/domains/wallet/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the API dependency graph.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	redis       *infraCache.RedisCache
	JWTManager  *jwt.Manager
	TxManager   pkgdb.TxManager
	AsynqClient *asynq.Client
	Publisher   messaging.Publisher
	Images      catalogService.ImageStore
	Razorpay    *razorpay.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo     userRepo.Repository
	AddressRepo  addressRepo.Repository
	CategoryRepo catalogRepo.CategoryRepository
	ProductRepo  catalogRepo.ProductRepository
	CartRepo     cartRepo.Repository
	WalletRepo   walletRepo.Repository
	CouponRepo   couponRepo.Repository
	OrderRepo    orderRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService     userService.Service
	AddressService  addressService.Service
	CategoryService catalogService.CategoryService
	ProductService  catalogService.ProductService
	CartService     cartService.Service
	WalletService   walletService.Service
	CouponService   couponService.Service
	PaymentService  paymentService.Service
	OTPService      otpService.Service
	OrderService    orderService.OrderService

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler     *userHandler.UserHandler
	AddressHandler  *addressHandler.AddressHandler
	CategoryHandler *catalogHandler.CategoryHandler
	ProductHandler  *catalogHandler.ProductHandler
	CartHandler     *cartHandler.CartHandler
	WalletHandler   *walletHandler.WalletHandler
	CouponHandler   *couponHandler.CouponHandler
	PaymentHandler  *paymentHandler.PaymentHandler
	OTPHandler      *otpHandler.OTPHandler
	OrderHandler    *orderHandler.OrderHandler
}

// NewContainer builds the graph in dependency order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	logger.Info("Initializing DI container", nil)

	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("DI container initialized", map[string]interface{}{"env": cfg.App.Environment})
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure() error {
	cfg := c.Config

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	c.TxManager = pkgdb.NewTxManager(db.Pool)

	// OTP codes live only in Redis, so a dead Redis is fatal.
	c.redis = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.redis.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = c.redis

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	c.AsynqClient = asynq.NewClient(RedisClientOpt(cfg.Redis))
	c.Publisher = messaging.NewPublisher(cfg.Kafka)
	c.Razorpay = razorpay.NewClient(cfg.Razorpay)

	images, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		logger.Warn("MinIO unavailable, image uploads disabled", map[string]interface{}{"error": err.Error()})
	} else {
		c.Images = images
	}

	return nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.AddressRepo = addressRepo.NewPostgresRepository(pool)
	c.CategoryRepo = catalogRepo.NewPostgresCategoryRepository(pool)
	c.ProductRepo = catalogRepo.NewPostgresProductRepository(pool)
	c.CartRepo = cartRepo.NewPostgresRepository(pool)
	c.WalletRepo = walletRepo.NewPostgresRepository(pool)
	c.CouponRepo = couponRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo)
	c.AddressService = addressService.NewAddressService(c.AddressRepo)
	c.CategoryService = catalogService.NewCategoryService(c.CategoryRepo)
	c.ProductService = catalogService.NewProductService(c.ProductRepo, c.CategoryRepo, c.Images, storage.NewImageProcessor())
	c.CartService = cartService.NewCartService(c.CartRepo, c.ProductService, c.UserRepo)
	c.WalletService = walletService.NewWalletService(c.WalletRepo, c.TxManager)
	c.CouponService = couponService.NewCouponService(c.CouponRepo)
	c.PaymentService = paymentService.NewPaymentService(c.Razorpay)
	c.OTPService = otpService.NewOTPService(c.Cache, c.AsynqClient)

	c.OrderService = orderService.NewOrderService(orderService.Dependencies{
		Orders:    c.OrderRepo,
		Tx:        c.TxManager,
		Catalog:   c.ProductService,
		Stock:     c.ProductRepo,
		Wallets:   c.WalletRepo,
		Carts:     c.CartRepo,
		Users:     c.UserRepo,
		Addresses: c.AddressService,
		Coupons:   c.CouponService,
		Payments:  c.Razorpay,
		Events:    c.Publisher,
		Tasks:     c.AsynqClient,
		CODLimit:  c.Config.Order.CODLimit,
	})
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.AddressHandler = addressHandler.NewAddressHandler(c.AddressService)
	c.CategoryHandler = catalogHandler.NewCategoryHandler(c.CategoryService)
	c.ProductHandler = catalogHandler.NewProductHandler(c.ProductService)
	c.CartHandler = cartHandler.NewCartHandler(c.CartService)
	c.WalletHandler = walletHandler.NewWalletHandler(c.WalletService)
	c.CouponHandler = couponHandler.NewCouponHandler(c.CouponService)
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.PaymentService)
	c.OTPHandler = otpHandler.NewOTPHandler(c.OTPService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
}

// ========================================
// HELPER METHODS
// ========================================

// RedisClientOpt converts the app's Redis settings for asynq.
func RedisClientOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// Cleanup releases resources during graceful shutdown.
func (c *Container) Cleanup() {
	logger.Info("Cleaning up container resources", nil)

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("Failed to close Redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}

	logger.Info("Container cleanup completed", nil)
}
