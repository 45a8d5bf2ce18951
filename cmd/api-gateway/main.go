package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/uniplan/uniplan-api/api/swagger"
	"github.com/uniplan/uniplan-api/internal/handler"
	"github.com/uniplan/uniplan-api/internal/middleware"
	"github.com/uniplan/uniplan-api/internal/models"
	"github.com/uniplan/uniplan-api/internal/repository"
	"github.com/uniplan/uniplan-api/internal/service"
	"github.com/uniplan/uniplan-api/pkg/cache"
	"github.com/uniplan/uniplan-api/pkg/config"
	"github.com/uniplan/uniplan-api/pkg/database"
	"github.com/uniplan/uniplan-api/pkg/export"
	"github.com/uniplan/uniplan-api/pkg/logger"
	corsmiddleware "github.com/uniplan/uniplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/uniplan/uniplan-api/pkg/middleware/requestid"
)

// @title UniPlan API
// @version 1.0.0
// @description University class scheduling and approval workflow backend
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	cacheRepo := repository.NewCacheRepository(nil, logr)
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, running without cache", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	defer cacheRepo.Close() //nolint:errcheck

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	termRepo := repository.NewTermRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	timeSlotRepo := repository.NewTimeSlotRepository(db)
	offeringRepo := repository.NewCourseOfferingRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	assignmentRepo := repository.NewScheduleAssignmentRepository(db)
	reviewNoteRepo := repository.NewReviewNoteRepository(db)
	txManager := repository.NewTxManager(db)

	// Services.
	authService := service.NewAuthService(userRepo, nil, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	userService := service.NewUserService(userRepo, nil, logr)
	facultyService := service.NewFacultyService(facultyRepo, nil, logr)
	departmentService := service.NewDepartmentService(departmentRepo, facultyRepo, nil, logr)
	termService := service.NewTermService(termRepo, nil, logr)
	courseService := service.NewCourseService(courseRepo, nil, logr)
	instructorService := service.NewInstructorService(instructorRepo, nil, logr)
	classroomService := service.NewClassroomService(classroomRepo, nil, logr)
	timeSlotService := service.NewTimeSlotService(timeSlotRepo, nil, logr)
	offeringService := service.NewCourseOfferingService(offeringRepo, courseRepo, instructorRepo, classroomRepo, nil, logr)
	scheduleService := service.NewScheduleService(
		scheduleRepo,
		assignmentRepo,
		reviewNoteRepo,
		offeringRepo,
		timeSlotRepo,
		userRepo,
		txManager,
		cacheRepo,
		nil,
		logr,
		cfg.Cache.ScheduleDetailTTL,
	)
	exportService := service.NewExportService(scheduleRepo, assignmentRepo, export.NewCSVExporter(), export.NewPDFExporter(), logr)
	metricsService := service.NewMetricsService()

	// Handlers.
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	facultyHandler := handler.NewFacultyHandler(facultyService)
	departmentHandler := handler.NewDepartmentHandler(departmentService)
	termHandler := handler.NewTermHandler(termService)
	courseHandler := handler.NewCourseHandler(courseService)
	instructorHandler := handler.NewInstructorHandler(instructorService)
	classroomHandler := handler.NewClassroomHandler(classroomService)
	timeSlotHandler := handler.NewTimeSlotHandler(timeSlotService)
	offeringHandler := handler.NewCourseOfferingHandler(offeringService)
	scheduleHandler := handler.NewScheduleHandler(scheduleService, exportService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus())

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r, cfg, authService, userRepo, routeHandlers{
		auth:       authHandler,
		users:      userHandler,
		faculties:  facultyHandler,
		deps:       departmentHandler,
		terms:      termHandler,
		courses:    courseHandler,
		instrs:     instructorHandler,
		classrooms: classroomHandler,
		slots:      timeSlotHandler,
		offerings:  offeringHandler,
		schedules:  scheduleHandler,
		metrics:    metricsHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

type routeHandlers struct {
	auth       *handler.AuthHandler
	users      *handler.UserHandler
	faculties  *handler.FacultyHandler
	deps       *handler.DepartmentHandler
	terms      *handler.TermHandler
	courses    *handler.CourseHandler
	instrs     *handler.InstructorHandler
	classrooms *handler.ClassroomHandler
	slots      *handler.TimeSlotHandler
	offerings  *handler.CourseOfferingHandler
	schedules  *handler.ScheduleHandler
	metrics    *handler.MetricsHandler
}

func registerRoutes(r *gin.Engine, cfg *config.Config, authService *service.AuthService, userRepo *repository.UserRepository, h routeHandlers) {
	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/login", h.auth.Login)
	auth.POST("/refresh", h.auth.Refresh)
	auth.POST("/logout", middleware.JWT(authService), h.auth.Logout)
	auth.GET("/me", middleware.JWT(authService), h.auth.Me)
	auth.PUT("/password", middleware.JWT(authService), h.auth.ChangePassword)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleDean, models.RoleDepartmentRep)
	planners := middleware.RequireRoles(models.RoleAdmin, models.RoleDepartmentRep)
	reviewers := middleware.RequireRoles(models.RoleAdmin, models.RoleDean)

	users := api.Group("/users", middleware.JWT(authService))
	users.GET("", adminOnly, h.users.List)
	users.GET("/:id", middleware.RBAC(string(models.RoleAdmin), "SELF"), h.users.Get)
	users.POST("", adminOnly, h.users.Create)
	users.PUT("/:id", adminOnly, h.users.Update)
	users.DELETE("/:id", adminOnly, h.users.Deactivate)

	faculties := api.Group("/faculties", middleware.JWT(authService))
	faculties.GET("", staff, h.faculties.List)
	faculties.GET("/:id", staff, h.faculties.Get)
	faculties.POST("", adminOnly, h.faculties.Create)
	faculties.PUT("/:id", adminOnly, h.faculties.Update)
	faculties.DELETE("/:id", adminOnly, h.faculties.Delete)

	departments := api.Group("/departments", middleware.JWT(authService))
	departments.GET("", staff, h.deps.List)
	departments.GET("/:id", staff, h.deps.Get)
	departments.POST("", adminOnly, h.deps.Create)
	departments.PUT("/:id", adminOnly, h.deps.Update)
	departments.DELETE("/:id", adminOnly, h.deps.Delete)

	terms := api.Group("/terms", middleware.JWT(authService))
	terms.GET("", staff, h.terms.List)
	terms.GET("/:id", staff, h.terms.Get)
	terms.POST("", adminOnly, h.terms.Create)
	terms.PUT("/:id", adminOnly, h.terms.Update)

	courses := api.Group("/courses", middleware.JWT(authService))
	courses.GET("", staff, h.courses.List)
	courses.GET("/:id", staff, h.courses.Get)
	courses.POST("", planners, h.courses.Create)
	courses.PUT("/:id", planners, h.courses.Update)
	courses.DELETE("/:id", planners, h.courses.Delete)

	instructors := api.Group("/instructors", middleware.JWT(authService))
	instructors.GET("", staff, h.instrs.List)
	instructors.GET("/:id", staff, h.instrs.Get)
	instructors.POST("", planners, h.instrs.Create)
	instructors.PUT("/:id", planners, h.instrs.Update)
	instructors.DELETE("/:id", planners, h.instrs.Deactivate)

	classrooms := api.Group("/classrooms", middleware.JWT(authService))
	classrooms.GET("", staff, h.classrooms.List)
	classrooms.GET("/:id", staff, h.classrooms.Get)
	classrooms.POST("", adminOnly, h.classrooms.Create)
	classrooms.PUT("/:id", adminOnly, h.classrooms.Update)
	classrooms.DELETE("/:id", adminOnly, h.classrooms.Deactivate)

	slots := api.Group("/time-slots", middleware.JWT(authService))
	slots.GET("", staff, h.slots.List)
	slots.GET("/:id", staff, h.slots.Get)
	slots.POST("", adminOnly, h.slots.Create)
	slots.DELETE("/:id", adminOnly, h.slots.Delete)

	offerings := api.Group("/course-offerings", middleware.JWT(authService))
	offerings.GET("", staff, h.offerings.List)
	offerings.GET("/:id", staff, h.offerings.Get)
	offerings.POST("", planners, h.offerings.Create)
	offerings.PUT("/:id", planners, h.offerings.Update)
	offerings.DELETE("/:id", planners, h.offerings.Delete)

	schedules := api.Group("/schedules", middleware.JWT(authService), middleware.WithResponseMeta())
	schedules.GET("", staff, h.schedules.List)
	schedules.GET("/:id", staff, h.schedules.Get)
	schedules.POST("", planners, h.schedules.Create)
	schedules.POST("/:id/assignments", planners, h.schedules.AddAssignment)
	schedules.DELETE("/:id/assignments/:assignmentId", planners, h.schedules.RemoveAssignment)
	schedules.POST("/:id/conflicts", staff, h.schedules.CheckConflicts)
	schedules.POST("/:id/submit", planners, h.schedules.Submit)
	schedules.POST("/:id/approve", reviewers, h.schedules.Approve)
	schedules.POST("/:id/reject", reviewers, h.schedules.Reject)
	if cfg.Export.Enabled {
		schedules.GET("/:id/export", staff, middleware.Audit(userRepo, "schedule.export", "schedule"), h.schedules.Export)
	}

	metrics := api.Group("/metrics", middleware.JWT(authService))
	metrics.GET("/summary", adminOnly, h.metrics.Snapshot)
}
