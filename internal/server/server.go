// Package server exposes the query layer over HTTP.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"github.com/zneright/tourkita-core/internal/feed"
	"github.com/zneright/tourkita-core/internal/geo"
	"github.com/zneright/tourkita-core/internal/model"
	"github.com/zneright/tourkita-core/internal/query"
	"github.com/zneright/tourkita-core/internal/routing"
	"github.com/zneright/tourkita-core/internal/store"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

func NewServer(
	serviceName string,
	queries *query.Service,
	events store.Store,
	routes *routing.Client,
) *Server {
	return &Server{
		logger:      slog.Default().WithGroup("http"),
		serviceName: serviceName,
		queries:     queries,
		events:      events,
		routes:      routes,
	}
}

type Server struct {
	serviceName string
	logger      *slog.Logger
	queries     *query.Service
	events      store.Store
	routes      *routing.Client
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	mux := gin.New()

	mux.Use(
		sloggin.NewWithConfig(s.logger,
			sloggin.Config{
				DefaultLevel:     slog.LevelInfo,
				ClientErrorLevel: slog.LevelWarn,
				ServerErrorLevel: slog.LevelError,
			},
		),
		gin.Recovery(), otelgin.Middleware(s.serviceName), slogAddTraceAttributes,
	)

	mux.GET("/healthcheck", s.healthcheck)

	api := mux.Group("/api")
	api.GET("/events/today", s.eventsToday)
	api.GET("/events/on/:date", s.eventsOn)
	api.GET("/events/month/:month", s.eventsMonth)
	api.GET("/events/near", s.eventsNear)
	api.GET("/places/:id/status", s.placeStatus)
	api.GET("/places/:id/route", s.placeRoute)
	api.GET("/calendar/:month", s.calendarFeed)

	mux.NoRoute(notFound)

	mux.ServeHTTP(w, r)
}

func (s *Server) healthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) eventsToday(c *gin.Context) {
	occurrences, err := s.queries.EventsOccurringToday(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, occurrences)
}

func (s *Server) eventsOn(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		badRequest(c, "INVALID_DATE", "date must be YYYY-MM-DD")
		return
	}
	occurrences, err := s.queries.EventsOccurringOn(c.Request.Context(), date)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, occurrences)
}

func (s *Server) eventsMonth(c *gin.Context) {
	month, err := time.Parse(monthLayout, c.Param("month"))
	if err != nil {
		badRequest(c, "INVALID_MONTH", "month must be YYYY-MM")
		return
	}
	byDay, err := s.queries.EventsOccurringInMonth(c.Request.Context(), month.Year(), month.Month())
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, byDay)
}

func (s *Server) eventsNear(c *gin.Context) {
	lat, lng, err := geo.ParseLatLng(c.Query("lat"), c.Query("lng"))
	if err != nil {
		badRequest(c, "INVALID_COORDINATES", err.Error())
		return
	}

	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		date, err = time.Parse(dateLayout, raw)
		if err != nil {
			badRequest(c, "INVALID_DATE", "date must be YYYY-MM-DD")
			return
		}
	}

	occurrences, err := s.queries.EventsNear(c.Request.Context(), lat, lng, date)
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, occurrences)
}

func (s *Server) placeStatus(c *gin.Context) {
	label, err := s.queries.PlaceStatus(c.Request.Context(), c.Param("id"))
	if errors.Is(err, model.ErrNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": label})
}

func (s *Server) placeRoute(c *gin.Context) {
	if s.routes == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"code": "ROUTING_DISABLED", "message": "Routing frontend not configured"})
		return
	}
	place, err := s.events.GetPlace(c.Request.Context(), c.Param("id"))
	if errors.Is(err, model.ErrNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": s.routes.RouteURL(place.Latitude, place.Longitude, place.Name)})
}

func (s *Server) calendarFeed(c *gin.Context) {
	raw := strings.TrimSuffix(c.Param("month"), ".ics")
	month, err := time.Parse(monthLayout, raw)
	if err != nil {
		badRequest(c, "INVALID_MONTH", "month must be YYYY-MM")
		return
	}
	events, err := s.events.ListEvents(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}
	cal := feed.BuildMonthCalendar(events, month.Year(), month.Month(), nil)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}

func badRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"code": code, "message": message})
}

func serverError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"code": "INTERNAL", "message": "Internal error"})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "message": "Not found"})
}

func slogAddTraceAttributes(c *gin.Context) {
	sloggin.AddCustomAttributes(c,
		slog.String("trace-id", trace.SpanFromContext(c.Request.Context()).SpanContext().TraceID().String()),
	)
	sloggin.AddCustomAttributes(c,
		slog.String("span-id", trace.SpanFromContext(c.Request.Context()).SpanContext().SpanID().String()),
	)
	c.Next()
}
