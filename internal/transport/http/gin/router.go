package httpgin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/issuer"
	"github.com/kirinyoku/gigledger/internal/registry"
	redisrepo "github.com/kirinyoku/gigledger/internal/repository/redis"
	"github.com/kirinyoku/gigledger/internal/service"
	"github.com/kirinyoku/gigledger/internal/service/concert"
	"github.com/kirinyoku/gigledger/internal/service/query"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// IdempotencyStore is the part of redisrepo.IdempotencyStore the purchase
// route needs.
type IdempotencyStore interface {
	Acquire(ctx context.Context, key string, lockTTL time.Duration) (string, bool, error)
	SaveResult(ctx context.Context, key string, payload []byte) error
	Lookup(ctx context.Context, key string) ([]byte, redisrepo.IdemState, error)
	Release(ctx context.Context, key, owner string) error
}

type Options struct {
	JWTSecret []byte
	// Idem enables Idempotency-Key on purchases. May be nil.
	Idem IdempotencyStore
	// Hub serves /notifications/stream. May be nil.
	Hub *Hub
}

func NewRouter(
	svcs *service.Services,
	opts Options,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS(), AuthMiddleware(opts.JWTSecret))
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public reads
	r.GET("/roles/:role/:identity", handleIsApproved(svcs))
	r.GET("/concerts", handleListConcerts(svcs))
	r.GET("/concerts/next-id", handleNextConcertID(svcs))
	r.GET("/concerts/:id", handleGetConcert(svcs))
	r.GET("/concerts/:id/state", handleGetState(svcs))
	r.GET("/concerts/:id/attendees", handleHolders(svcs, domain.TokenTicket))
	r.GET("/concerts/:id/supporters", handleHolders(svcs, domain.TokenSupporter))
	r.GET("/concerts/:id/notifications", handleNotifications(svcs))
	r.GET("/concerts/:id/settlement", handleGetSettlement(svcs))
	r.GET("/tokens/:kind/:id", handleGetToken(svcs))
	r.GET("/tickets/:id/qr.png", handleTicketQR(svcs))
	r.GET("/accounts/:identity/balance", handleBalance(svcs))
	r.GET("/metadata/:hash", handleGetMetadata(svcs))
	r.GET("/ledger/verify", handleVerifyLedger(svcs))
	if opts.Hub != nil {
		r.GET("/notifications/stream", handleStream(opts.Hub))
	}

	// Calls made as an identity
	auth := r.Group("/", RequireIdentity())
	{
		auth.POST("/concerts", handleCreateConcert(svcs))
		auth.POST("/concerts/:id/venue-approval", handleVenueApproval(svcs))
		auth.POST("/concerts/:id/artist-approval", handleArtistApproval(svcs))
		auth.POST("/concerts/:id/state", handleUpdateState(svcs))
		auth.POST("/concerts/:id/tickets", handleBuyTicket(svcs, opts.Idem))
		auth.POST("/concerts/:id/payout", handleTriggerPayout(svcs))
	}

	// Operator API; the registry and issuers check the operator set.
	admin := r.Group("/admin", RequireIdentity())
	{
		admin.POST("/roles/:role", handleApproveRole(svcs))
		admin.DELETE("/roles/:role/:identity", handleRevokeRole(svcs))
		admin.POST("/minters/:kind", handleSetMinter(svcs))
	}

	return r
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v < 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseIdentityParam(c *gin.Context, name string) (domain.Identity, bool) {
	id, err := domain.ParseIdentity(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return "", false
	}
	return id, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func fail(c *gin.Context, status int, reason error) {
	c.JSON(status, ErrorResponse{Error: reason.Error()})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var limited concert.RateLimitedError
	if errors.As(err, &limited) {
		secs := int(limited.RetryAfter.Round(time.Second) / time.Second)
		c.Header("Retry-After", strconv.Itoa(max(secs, 1)))
		fail(c, http.StatusTooManyRequests, concert.ErrRateLimited)
		return
	}

	switch {
	// domain
	case errors.Is(err, domain.ErrUnauthorized):
		fail(c, http.StatusForbidden, domain.ErrUnauthorized)
	case errors.Is(err, domain.ErrInvalidStateTransition):
		fail(c, http.StatusConflict, domain.ErrInvalidStateTransition)
	case errors.Is(err, domain.ErrInvalidConfiguration):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSaleNotOpen):
		fail(c, http.StatusConflict, domain.ErrSaleNotOpen)
	case errors.Is(err, domain.ErrInsufficientPayment):
		fail(c, http.StatusPaymentRequired, domain.ErrInsufficientPayment)
	case errors.Is(err, domain.ErrAlreadySettled):
		fail(c, http.StatusConflict, domain.ErrAlreadySettled)
	case errors.Is(err, domain.ErrTransferFailure):
		fail(c, http.StatusBadGateway, domain.ErrTransferFailure)
	case errors.Is(err, domain.ErrInvalidIdentity):
		fail(c, http.StatusBadRequest, domain.ErrInvalidIdentity)
	// registry
	case errors.Is(err, registry.ErrUnknownRole):
		fail(c, http.StatusBadRequest, registry.ErrUnknownRole)
	case errors.Is(err, registry.ErrNotApproved):
		fail(c, http.StatusNotFound, registry.ErrNotApproved)
	// issuers
	case errors.Is(err, issuer.ErrUnknownKind):
		fail(c, http.StatusBadRequest, issuer.ErrUnknownKind)
	case errors.Is(err, issuer.ErrTokenNotFound):
		fail(c, http.StatusNotFound, issuer.ErrTokenNotFound)
	case errors.Is(err, issuer.ErrMinterNotApproved):
		c.Error(err)
		fail(c, http.StatusServiceUnavailable, issuer.ErrMinterNotApproved)
	// concert and query services
	case errors.Is(err, concert.ErrConcertNotFound), errors.Is(err, query.ErrConcertNotFound):
		fail(c, http.StatusNotFound, concert.ErrConcertNotFound)
	case errors.Is(err, query.ErrDocumentNotFound):
		fail(c, http.StatusNotFound, query.ErrDocumentNotFound)
	case errors.Is(err, query.ErrNotSettled):
		fail(c, http.StatusNotFound, query.ErrNotSettled)
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
