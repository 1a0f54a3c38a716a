package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	config "github.com/phillip/ngo-portal-go/config"
	controllers "github.com/phillip/ngo-portal-go/controllers"
	database "github.com/phillip/ngo-portal-go/database"
	middleware "github.com/phillip/ngo-portal-go/middleware"
	utils "github.com/phillip/ngo-portal-go/utils"
)

// NewRouter builds the engine with the middleware chain and every route.
func NewRouter(cfg *config.Config, repos *database.Repositories, assets utils.AssetStore) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), gin.Logger(), gin.Recovery(), middleware.Metrics())
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "If-None-Match", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"ETag", "Last-Modified", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.MaxMultipartMemory = 32 << 20

	SetupRoutes(r, cfg, &controllers.Deps{Config: cfg, Repos: repos, Assets: assets})
	return r
}

func SetupRoutes(r *gin.Engine, cfg *config.Config, d *controllers.Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// pages
	auth := middleware.SessionGate(cfg)
	r.GET(cfg.Session.LoginPath, middleware.LoginPageGate(cfg), controllers.LoginPage(d))
	r.GET(cfg.Session.HomePath, auth, controllers.AdminPage(d))

	api := r.Group("/api")
	api.POST("/login", controllers.Login(d))
	api.POST("/logout", controllers.Logout(d))
	api.GET("/dashboard/stats", auth, controllers.GetDashboardStats(d))

	// content: public reads, admin writes
	campaigns := controllers.Campaigns(d)
	api.GET("/campaigns/slug/:slug", controllers.GetCampaignBySlug(d))
	content(api, "/campaigns", auth, campaigns.List(), campaigns.Get(), campaigns.Create(), campaigns.Update(), campaigns.Delete())

	events := controllers.Events(d)
	api.POST("/events/register", controllers.RegisterForEvent(d))
	api.GET("/events/:id/registrations", auth, controllers.ListEventRegistrations(d))
	content(api, "/events", auth, events.List(), events.Get(), events.Create(), events.Update(), events.Delete())

	board := controllers.BoardMembers(d)
	content(api, "/board-members", auth, board.List(), board.Get(), board.Create(), board.Update(), board.Delete())
	team := controllers.TeamMembers(d)
	content(api, "/team-members", auth, team.List(), team.Get(), team.Create(), team.Update(), team.Delete())
	media := controllers.Media(d)
	content(api, "/media", auth, media.List(), media.Get(), media.Create(), media.Update(), media.Delete())
	press := controllers.PressReleases(d)
	content(api, "/press-releases", auth, press.List(), press.Get(), press.Create(), press.Update(), press.Delete())
	docs := controllers.ComplianceDocuments(d)
	content(api, "/compliance-documents", auth, docs.List(), docs.Get(), docs.Create(), docs.Update(), docs.Delete())
	banners := controllers.Banners(d)
	content(api, "/banners", auth, banners.List(), banners.Get(), banners.Create(), banners.Update(), banners.Delete())
	collaborators := controllers.Collaborators(d)
	content(api, "/collaborators", auth, collaborators.List(), collaborators.Get(), collaborators.Create(), collaborators.Update(), collaborators.Delete())
	gallery := controllers.Gallery(d)
	content(api, "/gallery", auth, gallery.List(), gallery.Get(), gallery.Create(), gallery.Update(), gallery.Delete())
	programs := controllers.Programs(d)
	content(api, "/programs", auth, programs.List(), programs.Get(), programs.Create(), programs.Update(), programs.Delete())
	videos := controllers.Videos(d)
	content(api, "/videos", auth, videos.List(), videos.Get(), videos.Create(), videos.Update(), videos.Delete())

	records := controllers.TrackRecords(d)
	content(api, "/track-records", auth, records.List(), records.Get(), records.Create(), records.Update(), records.Delete())
	api.PATCH("/track-records/:id", auth, records.Update())
	stats := controllers.ImpactStats(d)
	content(api, "/impact-stats", auth, stats.List(), stats.Get(), stats.Create(), stats.Update(), stats.Delete())
	api.PATCH("/impact-stats/:id", auth, stats.Update())

	// submissions: public create, admin everything else
	volunteers := controllers.Volunteers(d)
	submissions(api, "/volunteers", auth, volunteers.List(), volunteers.Get(), volunteers.Create(), controllers.VolunteerStatus(d).Update(), volunteers.Delete())
	donations := controllers.Donations(d)
	submissions(api, "/donations", auth, donations.List(), donations.Get(), controllers.PublicDonations(d).Create(), donations.Update(), donations.Delete())
	messages := controllers.Messages(d)
	submissions(api, "/messages", auth, messages.List(), messages.Get(), controllers.PublicMessages(d).Create(), messages.Update(), messages.Delete())
	api.PATCH("/messages/:id/read", auth, controllers.MarkMessageRead(d).Update())
}

func content(api *gin.RouterGroup, path string, auth gin.HandlerFunc, list, get, create, update, del gin.HandlerFunc) {
	g := api.Group(path)
	{
		g.GET("", list)
		g.GET("/:id", get)
		g.POST("", auth, create)
		g.PUT("/:id", auth, update)
		g.DELETE("/:id", auth, del)
	}
}

func submissions(api *gin.RouterGroup, path string, auth gin.HandlerFunc, list, get, create, update, del gin.HandlerFunc) {
	g := api.Group(path)
	{
		g.POST("", create)
		g.GET("", auth, list)
		g.GET("/:id", auth, get)
		g.PUT("/:id", auth, update)
		g.DELETE("/:id", auth, del)
	}
}
