package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artworked/core/board/realtime"
	chttp "github.com/artworked/core/core/http"
	"github.com/artworked/core/core/confirm"
	"github.com/artworked/core/deps"
	"github.com/artworked/core/jobs"
	"github.com/artworked/core/modules/api/controller"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("api")

type Module struct {
	Deps     deps.Deps
	Realtime *realtime.Server
}

func New(d deps.Deps) *Module {
	return &Module{
		Deps:     d,
		Realtime: realtime.New(d, d.Config().Copy().Development()),
	}
}

// Router builds the http routes of the api.
func (module *Module) Router() *gin.Engine {
	debug := module.Deps.Config().Copy().Development()
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.UseRawPath = true
	router.Use(gin.Logger())
	router.Use(chttp.ErrorTracking(debug))
	router.Use(chttp.CORS())
	router.Use(chttp.Authorization())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"status": "error", "message": "Not found"})
	})

	// Upload backend.
	router.POST("/generate-signature", controller.GenerateSignature)
	router.POST("/upload-picture", controller.UploadPicture)
	router.POST("/delete-image", chttp.NeedAuthorization(), controller.DeleteImage)

	v1 := router.Group("/v1")
	v1.POST("/auth/signup", controller.Signup)
	v1.POST("/auth/login", controller.Login)
	v1.GET("/users/search", controller.SearchUsers)
	v1.GET("/users/:encryptedId", controller.UserProfile)
	v1.GET("/feed", controller.Feed)
	v1.GET("/posts/:id", controller.Post)
	v1.GET("/posts/:id/comments", controller.Comments)

	authorized := v1.Group("")
	authorized.Use(chttp.NeedAuthorization())
	authorized.Use(chttp.UserMiddleware())

	// Profile routes
	authorized.GET("/me", controller.Me)
	authorized.PUT("/me", controller.UpdateMe)
	authorized.PUT("/me/email", controller.UpdateEmail)
	authorized.PUT("/me/password", controller.UpdatePassword)

	// Post routes
	authorized.POST("/posts", controller.NewPost)
	authorized.DELETE("/posts/:id", chttp.Confirmed(confirm.DELETE_POST, "id"), controller.DeletePost)
	authorized.GET("/posts/:id/like", controller.LikeState)
	authorized.POST("/posts/:id/like", controller.Like)
	authorized.DELETE("/posts/:id/like", controller.Unlike)
	authorized.POST("/posts/:id/comments", controller.NewComment)
	authorized.DELETE("/posts/:id/comments/:commentId", chttp.Confirmed(confirm.DELETE_COMMENT, "commentId"), controller.DeleteComment)

	// Confirmation routes
	authorized.POST("/confirmations", controller.NewConfirmation)
	authorized.DELETE("/confirmations/:token", controller.CancelConfirmation)

	// Notification routes
	authorized.GET("/notifications", controller.Notifications)
	authorized.PUT("/notifications/read", controller.ReadNotifications)
	authorized.PUT("/notifications/:id/read", controller.ReadNotification)

	return router
}

// Handler serves the api routes next to the realtime socket.
func (module *Module) Handler() http.Handler {
	h := http.NewServeMux()
	h.Handle(realtime.HandleURL, module.Realtime)
	h.Handle("/", module.Router())
	return h
}

// Run serves on bindTo until interrupted.
func (module *Module) Run(bindTo string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	module.Deps.Run(ctx)
	if err := module.Realtime.Run(ctx); err != nil {
		log.Fatalf("Could not start realtime: %v", err)
	}
	if minutes := module.Deps.Config().Copy().Recount; minutes > 0 {
		go jobs.Recount(ctx, module.Deps, time.Duration(minutes)*time.Minute)
	}

	// Start the http server as an isolated goroutine.
	srv := &http.Server{
		Addr:    bindTo,
		Handler: module.Handler(),
	}
	go func() {
		log.Infof("Listening on %s", bindTo)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Listen: %s", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	<-ctx.Done()
	log.Info("Shutdown Server ...")

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	log.Info("Server exiting")
}
