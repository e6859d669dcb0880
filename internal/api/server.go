package api

import (
	"context"
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubhouse-hq/clubhouse-api/docs"
	v1 "github.com/clubhouse-hq/clubhouse-api/internal/api/handler/v1"
	"github.com/clubhouse-hq/clubhouse-api/internal/api/middleware"
	"github.com/clubhouse-hq/clubhouse-api/internal/config"
	"github.com/clubhouse-hq/clubhouse-api/internal/pkg/imagestore"
	"github.com/clubhouse-hq/clubhouse-api/internal/pkg/jwthelper"
	"github.com/clubhouse-hq/clubhouse-api/internal/pkg/metrics"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository"
	"github.com/clubhouse-hq/clubhouse-api/internal/repository/dao"
	"github.com/clubhouse-hq/clubhouse-api/internal/service"
)

const basePath = "/api/v1"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
	Hub    *v1.ScanHub

	origins *middleware.Origins
	tokens  *jwthelper.Manager
	images  *imagestore.DiskStore
}

type handlers struct {
	auth          *v1.AuthHandler
	users         *v1.UserHandler
	announcements *v1.AnnouncementHandler
	bookForms     *v1.BookFormHandler
	submissions   *v1.SubmissionHandler
	tickets       *v1.TicketHandler
	achievements  *v1.AchievementHandler
	courses       *v1.CourseHandler
	uploads       *v1.UploadHandler
}

type services struct {
	users *service.UserService
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	images, err := imagestore.NewDiskStore(conf.Storage.ImagesDir, conf.Storage.PublicPath, conf.Storage.MaxUploadBytes)
	if err != nil {
		return nil, fmt.Errorf("imagestore.NewDiskStore -> %w", err)
	}

	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:  conf,
		Router:  engine,
		origins: middleware.NewOrigins(conf.API.AllowedCORSDomains),
		tokens: jwthelper.NewManager(
			conf.API.AccessTokenSecret, conf.API.RefreshTokenSecret,
			conf.API.AccessTokenTTL, conf.API.RefreshTokenTTL,
		),
		images: images,
	}
	s.Hub = v1.NewScanHub(s.origins)

	s.MountMiddlewares()
	h, svcs := s.initHandlers(db)
	s.MountHandlers(h, svcs)

	return s, nil
}

func (s *Server) initHandlers(db *gorm.DB) (handlers, services) {
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	announcementRepo := repository.NewAnnouncementRepository(dao.NewAnnouncementDAO(db))
	bookFormRepo := repository.NewBookFormRepository(dao.NewBookFormDAO(db))
	submissionRepo := repository.NewSubmissionRepository(dao.NewSubmissionDAO(db))
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db), userRepo)
	achievementRepo := repository.NewAchievementRepository(dao.NewAchievementDAO(db))
	courseRepo := repository.NewCourseRepository(dao.NewCourseDAO(db))

	userSvc := service.NewUserService(userRepo, s.images)
	ticketSvc := service.NewTicketService(ticketRepo, announcementRepo, submissionRepo, userRepo, s.Hub)

	return handlers{
		auth:          v1.NewAuthHandler(s.Config.API, service.NewAuthService(userRepo, s.tokens)),
		users:         v1.NewUserHandler(userSvc),
		announcements: v1.NewAnnouncementHandler(service.NewAnnouncementService(announcementRepo, s.images)),
		bookForms:     v1.NewBookFormHandler(service.NewBookFormService(bookFormRepo, announcementRepo)),
		submissions:   v1.NewSubmissionHandler(service.NewSubmissionService(submissionRepo, bookFormRepo, announcementRepo)),
		tickets:       v1.NewTicketHandler(ticketSvc),
		achievements:  v1.NewAchievementHandler(service.NewAchievementService(achievementRepo, s.images)),
		courses:       v1.NewCourseHandler(service.NewCourseService(courseRepo, s.images)),
		uploads:       v1.NewUploadHandler(s.images),
	}, services{users: userSvc}
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.Metrics())
	s.Router.Use(middleware.ConfigCORS(s.origins))
}

func (s *Server) MountHandlers(h handlers, svcs services) {
	authenticated := middleware.NewAuthenticator(s.tokens).VerifyJWT()
	member := middleware.RequireRole(svcs.users)
	admin := middleware.RequireAdmin(svcs.users)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", h.auth.HandleSignup)
		public.POST("/auth/login", h.auth.HandleLogin)
		public.POST("/auth/refreshToken", h.auth.HandleRefreshToken)

		public.GET("/users/leaderboard", h.users.HandleLeaderboard)

		public.GET("/announcements", h.announcements.HandleListAnnouncements)
		public.GET("/announcements/latest", h.announcements.HandleLatestAnnouncements)
		public.GET("/announcements/:announcementID", h.announcements.HandleGetAnnouncement)

		public.GET("/bookforms/:bookFormID", h.bookForms.HandleGetBookForm)
		public.GET("/bookforms/announcement/:announcementID", h.bookForms.HandleGetAnnouncementBookForm)

		public.GET("/achievements", h.achievements.HandleListAchievements)
		public.GET("/achievements/:achievementID", h.achievements.HandleGetAchievement)
		public.GET("/courses", h.courses.HandleListCourses)
		public.GET("/courses/:courseID", h.courses.HandleGetCourse)
	}

	members := s.Router.Group(basePath, authenticated)
	{
		members.POST("/auth/logout", h.auth.HandleLogout)
		members.GET("/auth/verifyJWT", member, h.auth.HandleVerifyJWT)

		members.GET("/users/me", member, h.users.HandleGetMe)
		members.PATCH("/users/me", h.users.HandleUpdateMe)
		members.GET("/users/:userID", member, h.users.HandleGetUser)

		members.POST("/submissions", h.submissions.HandleSubmit)
		members.GET("/submissions/me", h.submissions.HandleListMySubmissions)
		members.GET("/submissions/check/:announcementID", h.submissions.HandleCheckRegistration)
		members.GET("/submissions/:submissionID", member, h.submissions.HandleGetSubmission)
		members.DELETE("/submissions/:submissionID", member, h.submissions.HandleDeleteSubmission)

		members.GET("/tickets/download/:announcementID", h.tickets.HandleDownloadTicket)
		members.GET("/tickets/me", h.tickets.HandleListMyTickets)
	}

	admins := s.Router.Group(basePath, authenticated, admin)
	{
		admins.GET("/users", h.users.HandleListUsers)
		admins.PATCH("/users/:userID/role", h.users.HandleChangeRole)

		admins.POST("/announcements", h.announcements.HandleCreateAnnouncement)
		admins.PATCH("/announcements/:announcementID", h.announcements.HandleUpdateAnnouncement)
		admins.DELETE("/announcements/:announcementID", h.announcements.HandleDeleteAnnouncement)

		admins.POST("/bookforms", h.bookForms.HandleCreateBookForm)
		admins.PATCH("/bookforms/:bookFormID", h.bookForms.HandleUpdateBookForm)
		admins.DELETE("/bookforms/:bookFormID", h.bookForms.HandleDeleteBookForm)

		admins.GET("/submissions/announcement/:announcementID", h.submissions.HandleListAnnouncementSubmissions)

		admins.POST("/tickets/validate", h.tickets.HandleValidateTicket)
		admins.GET("/tickets/announcement/:announcementID", h.tickets.HandleAttendance)
		admins.GET("/tickets/live/:announcementID", s.Hub.HandleLive)

		admins.POST("/achievements", h.achievements.HandleCreateAchievement)
		admins.PATCH("/achievements/:achievementID", h.achievements.HandleUpdateAchievement)
		admins.DELETE("/achievements/:achievementID", h.achievements.HandleDeleteAchievement)
		admins.POST("/courses", h.courses.HandleCreateCourse)
		admins.PATCH("/courses/:courseID", h.courses.HandleUpdateCourse)
		admins.DELETE("/courses/:courseID", h.courses.HandleDeleteCourse)

		admins.POST("/uploads/images", h.uploads.HandleUploadImage)
	}

	s.Router.Static(s.images.PublicPath(), s.images.Dir())
	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Clubhouse API"
	docs.SwaggerInfo.Description = "Club announcements, registrations, QR tickets, achievements and courses."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

// Run starts the live scan hub, follows CORS changes in the config file and
// serves HTTP until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	go s.Hub.Run(ctx)

	s.Config.Watch(func(next *config.AppConfig) {
		s.origins.Set(next.API.AllowedCORSDomains)
		zap.L().Info("reloaded CORS allow-list", zap.Strings("origins", next.API.AllowedCORSDomains))
	})

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))

	errCh := make(chan error, 1)
	srv := s.httpServer(addr)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return shutdown(srv)
	}
}
