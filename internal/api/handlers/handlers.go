package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sarukeshwar2016/Inclusicity/internal/api/middleware"
	"github.com/sarukeshwar2016/Inclusicity/internal/domain/sos"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/auth"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/matching"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/notification"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/ratings"
	"github.com/sarukeshwar2016/Inclusicity/internal/service/reporting"
	apperrors "github.com/sarukeshwar2016/Inclusicity/pkg/errors"
	"github.com/sarukeshwar2016/Inclusicity/pkg/logger"
	"github.com/sarukeshwar2016/Inclusicity/pkg/monitoring"
	"github.com/sarukeshwar2016/Inclusicity/pkg/websocket"
)

// Handlers holds all handler dependencies
type Handlers struct {
	Auth     *auth.Service
	Tokens   *auth.TokenIssuer
	Engine   *matching.Engine
	Ratings  *ratings.Aggregator
	Reports  *reporting.Service
	Notifier *notification.Notifier
	Registry *websocket.RoomRegistry
	Alerts   sos.Repository
	Monitor  *monitoring.NewRelicApp
	Logger   *logger.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	authService *auth.Service,
	tokens *auth.TokenIssuer,
	engine *matching.Engine,
	aggregator *ratings.Aggregator,
	reports *reporting.Service,
	notifier *notification.Notifier,
	registry *websocket.RoomRegistry,
	alerts sos.Repository,
	monitor *monitoring.NewRelicApp,
	log *logger.Logger,
) *Handlers {
	return &Handlers{
		Auth:     authService,
		Tokens:   tokens,
		Engine:   engine,
		Ratings:  aggregator,
		Reports:  reports,
		Notifier: notifier,
		Registry: registry,
		Alerts:   alerts,
		Monitor:  monitor,
		Logger:   log,
	}
}

// respondError maps any service error to its HTTP shape
func (h *Handlers) respondError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr.Status >= 500 {
		h.Logger.Error("Request failed", logger.Err(err))
	}
	c.JSON(appErr.Status, gin.H{"code": appErr.Code, "error": appErr.Message})
}

// callerIdentity extracts the authenticated caller set by the middleware
func (h *Handlers) callerIdentity(c *gin.Context) (auth.Identity, bool) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		h.respondError(c, apperrors.Unauthorized("Not authenticated", nil))
	}
	return identity, ok
}

// pathUUID parses a :id path parameter
func (h *Handlers) pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.respondError(c, apperrors.BadRequest("Invalid id", err))
		return uuid.Nil, false
	}
	return id, true
}
