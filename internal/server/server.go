package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/clubkitlabs/clubkit/internal/agegroup"
	auditdomain "github.com/clubkitlabs/clubkit/internal/audit/domain"
	bundledomain "github.com/clubkitlabs/clubkit/internal/bundle/domain"
	catalogdomain "github.com/clubkitlabs/clubkit/internal/catalog/domain"
	"github.com/clubkitlabs/clubkit/internal/config"
	"github.com/clubkitlabs/clubkit/internal/location"
	membershipdomain "github.com/clubkitlabs/clubkit/internal/membership/domain"
	pricingdomain "github.com/clubkitlabs/clubkit/internal/pricing/domain"
	"github.com/clubkitlabs/clubkit/internal/term"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(RunHTTP),
)

type Params struct {
	fx.In

	Log           *zap.Logger
	Config        config.Config
	DB            *gorm.DB
	PricingSvc    pricingdomain.Service
	MembershipSvc membershipdomain.Service
	BundleSvc     bundledomain.Service
	CatalogSvc    catalogdomain.Service
	AgeGroupSvc   *agegroup.Service
	TermSvc       *term.Service
	LocationSvc   *location.Service
	AuditSvc      auditdomain.Service
}

type Server struct {
	log           *zap.Logger
	cfg           config.Config
	db            *gorm.DB
	pricingSvc    pricingdomain.Service
	membershipSvc membershipdomain.Service
	bundleSvc     bundledomain.Service
	catalogSvc    catalogdomain.Service
	agegroupSvc   *agegroup.Service
	termSvc       *term.Service
	locationSvc   *location.Service
	auditSvc      auditdomain.Service
}

func New(p Params) *Server {
	return &Server{
		log:           p.Log.Named("server"),
		cfg:           p.Config,
		db:            p.DB,
		pricingSvc:    p.PricingSvc,
		membershipSvc: p.MembershipSvc,
		bundleSvc:     p.BundleSvc,
		catalogSvc:    p.CatalogSvc,
		agegroupSvc:   p.AgeGroupSvc,
		termSvc:       p.TermSvc,
		locationSvc:   p.LocationSvc,
		auditSvc:      p.AuditSvc,
	}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(s.cfg.HTTP.Mode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/healthz", s.Healthz)
	r.GET("/readyz", s.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.GET("/locations", s.ListLocations)
		v1.POST("/locations", s.UpsertLocation)

		v1.GET("/locations/:locationID/age-groups", s.ListAgeGroups)
		v1.POST("/locations/:locationID/age-groups", s.UpsertAgeGroup)
		v1.GET("/locations/:locationID/terms", s.ListTerms)
		v1.POST("/locations/:locationID/terms", s.UpsertTerm)
		v1.GET("/locations/:locationID/services", s.ListServices)
		v1.POST("/locations/:locationID/services", s.UpsertService)

		v1.GET("/locations/:locationID/price-cells", s.ListPriceCells)
		v1.POST("/locations/:locationID/price-cells", s.UpsertPriceCell)
		v1.POST("/locations/:locationID/price-grid", s.SavePriceGrid)
		v1.POST("/locations/:locationID/price-rows/reclassify", s.ReclassifyPriceRow)
		v1.POST("/locations/:locationID/price-cells/refresh", s.RefreshPriceCells)

		v1.GET("/locations/:locationID/membership-programs", s.ListMembershipPrograms)
		v1.PUT("/membership-programs", s.UpsertMembershipProgram)
		v1.GET("/membership-programs/:programID", s.GetMembershipProgram)
		v1.POST("/membership-programs/:programID/eligibility/evaluate", s.EvaluateEligibility)
		v1.PATCH("/membership-programs/:programID/categories/:categoryID/rules/:ruleID/bound", s.SetRuleBound)
		v1.PATCH("/membership-programs/:programID/categories/:categoryID/fees/:feeID/amount", s.SetFeeAmount)

		v1.POST("/membership-services", s.BatchUpsertMembershipServices)
		v1.DELETE("/locations/:locationID/membership-services/:id", s.RemoveMembershipService)
		v1.GET("/locations/:locationID/membership-services", s.ResolveMembershipServices)

		v1.GET("/audit/export", s.ExportAuditLog)
	}

	return r
}

func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTP.Addr,
		Handler: s.Router(),
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			s.log.Info("http server listening", zap.String("addr", s.cfg.HTTP.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		s.log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
		)
	}
}
