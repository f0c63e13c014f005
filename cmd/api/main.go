package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quillcms/quill-backend/internal/config"
	"github.com/quillcms/quill-backend/internal/handler"
	"github.com/quillcms/quill-backend/internal/middleware"
	"github.com/quillcms/quill-backend/internal/migration"
	"github.com/quillcms/quill-backend/internal/repository"
	"github.com/quillcms/quill-backend/internal/service"
	"github.com/quillcms/quill-backend/pkg/cache"
	"github.com/quillcms/quill-backend/pkg/jwt"
	"github.com/quillcms/quill-backend/pkg/logger"
	"github.com/quillcms/quill-backend/pkg/redis"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	config.LoadDotEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logger.InitStructured(cfg.Server.Env)
	log := logger.GetLogger()

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := migration.SeedDefaults(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default options")
	}

	// The option cache is optional; the engine degrades to DB reads when
	// redis is unreachable.
	var cacheService cache.Service
	redisClient, err := redis.NewClient(cfg.Redis.Host, cfg.Redis.Port,
		cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, option cache disabled")
	} else {
		cacheService = cache.NewService(redisClient)
	}

	store := repository.NewStore(db)

	capSvc := service.NewCapabilityService(store)
	optionSvc := service.NewOptionService(store, cacheService)
	optionSvc.RegisterInvalidator(capSvc.Invalidate)

	metaSvc := service.NewMetaService(store, cfg.Content.MetaPrefix)
	trashSvc := service.NewTrashService(metaSvc)
	nameSvc := service.NewNameService()
	revisionSvc := service.NewRevisionService()
	contentSvc := service.NewContentService(store, capSvc, nameSvc, revisionSvc, trashSvc, optionSvc)

	jwtManager := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpireHours)*time.Hour)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	handler.RegisterRoutes(r,
		middleware.JWTAuth(jwtManager),
		handler.NewContentHandler(contentSvc),
		handler.NewMetaHandler(metaSvc),
		handler.NewOptionHandler(optionSvc),
	)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Str("env", cfg.Server.Env).Msg("starting server")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
