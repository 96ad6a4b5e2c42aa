// Package http exposes the backend over a REST/JSON surface: identity
// endpoints under /auth, the file catalog under /files, public share
// resolution under /shared and document summarization at /chat.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jkuschner/Document-Storage-App/internal/logging"
	"github.com/jkuschner/Document-Storage-App/internal/server/config"
	"github.com/jkuschner/Document-Storage-App/internal/server/models"
	"github.com/jkuschner/Document-Storage-App/internal/server/services"
)

// UserProvider is the slice of the user service the handlers use.
type UserProvider interface {
	Register(ctx context.Context, email string, password []byte) (*models.User, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	Login(ctx context.Context, email string, password []byte) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, email, code string, newPassword []byte) error
	SignOut(ctx context.Context, userID string) error
}

type FileProvider interface {
	RequestUpload(ctx context.Context, userID, fileName, contentType string, size int64) (*services.UploadSlot, error)
	Complete(ctx context.Context, userID, fileID string) error
	List(ctx context.Context, userID string) ([]*models.File, error)
	Download(ctx context.Context, userID, fileID string) (*services.DownloadLink, error)
	Delete(ctx context.Context, userID, fileID string) error
}

type ShareProvider interface {
	Create(ctx context.Context, userID, fileID string, validity time.Duration) (*services.ShareGrant, error)
	Resolve(ctx context.Context, token string) (*services.DownloadLink, error)
}

type SummaryProvider interface {
	Summarize(ctx context.Context, userID, fileID string) (*services.SummaryResult, error)
}

// Server wires the service layer to gin and owns the http.Server lifecycle.
type Server struct {
	engine    *gin.Engine
	srv       *http.Server
	logger    logging.Logger
	secretKey []byte

	users     UserProvider
	files     FileProvider
	shares    ShareProvider
	summaries SummaryProvider
}

func NewServer(cfg *config.Config, users UserProvider, files FileProvider, shares ShareProvider, summaries SummaryProvider, l logging.Logger) *Server {
	s := &Server{
		engine:    gin.New(),
		logger:    l.With("module", "http"),
		secretKey: []byte(cfg.SecretKey),
		users:     users,
		files:     files,
		shares:    shares,
		summaries: summaries,
	}

	s.engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	s.engine.Use(cors.New(corsConfig))

	s.registerRoutes()

	s.srv = &http.Server{
		Addr:              cfg.EndpointAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	authGroup := s.engine.Group("/auth")
	authGroup.POST("/signup", s.signUp)
	authGroup.POST("/confirm", s.confirmSignUp)
	authGroup.POST("/login", s.login)
	authGroup.POST("/refresh", s.refresh)
	authGroup.POST("/reset", s.requestReset)
	authGroup.POST("/reset/confirm", s.confirmReset)

	authMW := bearerAuth(s.secretKey)
	authGroup.GET("/me", authMW, s.me)
	authGroup.POST("/signout", authMW, s.signOut)

	filesGroup := s.engine.Group("/files", authMW)
	filesGroup.POST("", s.requestUpload)
	filesGroup.GET("", s.listFiles)
	filesGroup.GET("/:id", s.downloadFile)
	filesGroup.DELETE("/:id", s.deleteFile)
	filesGroup.POST("/:id/complete", s.completeUpload)
	filesGroup.POST("/:id/share", s.createShare)

	s.engine.POST("/chat", authMW, s.summarize)

	// Public, expiry is checked at resolution time.
	s.engine.GET("/shared/:token", s.resolveShare)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.srv.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
