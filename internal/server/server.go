package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/An-Array/SM-Backend/internal/api/controller"
	"github.com/An-Array/SM-Backend/internal/api/middleware"
	"github.com/An-Array/SM-Backend/internal/api/repository"
	"github.com/An-Array/SM-Backend/internal/config"
	"github.com/An-Array/SM-Backend/internal/token"
)

// Server wires the controllers onto a gin engine.
type Server struct {
	engine *gin.Engine
}

// NewServer builds the router: public registration/login endpoints behind a
// per-IP rate limiter, and the post and vote endpoints behind RequireAuth.
func NewServer(
	cfg *config.Config,
	tokens *token.Service,
	users repository.UserRepository,
	userController *controller.UserController,
	postController *controller.PostController,
	voteController *controller.VoteController,
) *Server {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:  []string{cfg.CORSOrigin},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}))

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to my API"})
	})

	limiter := middleware.NewIPRateLimiter(rate.Limit(5), 10)
	engine.POST("/users", middleware.RateLimit(limiter), userController.Register)
	engine.POST("/login", middleware.RateLimit(limiter), userController.Login)

	authed := engine.Group("/", middleware.RequireAuth(tokens, users))
	{
		authed.GET("/posts", postController.List)
		authed.POST("/posts", postController.Create)
		authed.GET("/posts/:id", postController.Get)
		authed.PUT("/posts/:id", postController.Update)
		authed.DELETE("/posts/:id", postController.Delete)
		authed.POST("/vote", voteController.Vote)
	}

	return &Server{engine: engine}
}

// Engine exposes the underlying gin engine for http.Server and tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
