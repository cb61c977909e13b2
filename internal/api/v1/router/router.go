package router

import (
	"context"
	"net/http"

	"app/internal/api/v1/handler"
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New wires the full application: store, object storage, services and
// routes. The returned pool is the caller's to close.
func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *pgxpool.Pool, error) {
	ctx := context.Background()

	// 1. Open DB connection pool
	pool, err := pgxpool.New(ctx, cfg.DBConnectionString)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	// 2. Initialize S3 client for course images
	s3Config, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		return nil, nil, err
	}
	s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3URL)
		o.UsePathStyle = true
	})

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Repositories & services
	userRepo := repository.NewUserRepo(pool)
	courseRepo := repository.NewCourseRepo(pool)
	cartRepo := repository.NewCartRepo(pool)
	paymentRepo := repository.NewPaymentRepo(pool)

	userSvc := service.NewUserService(userRepo)
	courseSvc := service.NewCourseService(courseRepo, userRepo, s3Client, cfg.S3Bucket, logger)
	cartSvc := service.NewCartService(cartRepo)
	stripeSvc := service.NewStripeService(cfg, logger)
	paymentSvc := service.NewPaymentService(paymentRepo, courseRepo, stripeSvc, logger)
	statsSvc := service.NewStatsService(userRepo, courseRepo, paymentRepo)

	// 5. Handlers
	tokenHandler := handler.NewTokenHandler(cfg.JWTSecret, validate, logger)
	userHandler := handler.NewUserHandler(userSvc, validate, logger)
	courseHandler := handler.NewCourseHandler(courseSvc, validate, logger)
	cartHandler := handler.NewCartHandler(cartSvc, validate, logger)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, validate, logger)
	adminHandler := handler.NewAdminHandler(statsSvc, logger)

	// 6. Middleware chains. Role gates always run behind the auth stage;
	// handlers never see a request whose identity was not verified first.
	authMw := middleware.AuthMiddleware(cfg.JWTSecret)
	adminMw := middleware.RequireRole(userSvc, model.RoleAdmin)
	instructorMw := middleware.RequireRole(userSvc, model.RoleInstructor)

	// 7. Routes
	mux := http.NewServeMux()
	tokenHandler.RegisterRoutes(mux)
	userHandler.RegisterRoutes(mux, authMw, adminMw)
	courseHandler.RegisterRoutes(mux, authMw, adminMw, instructorMw)
	cartHandler.RegisterRoutes(mux, authMw)
	paymentHandler.RegisterRoutes(mux, authMw)
	adminHandler.RegisterRoutes(mux, authMw, adminMw)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("course marketplace api"))
	})

	// 8. CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger, c.Handler(mux)), pool, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
