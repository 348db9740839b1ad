package httpgin

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/gigledger/internal/domain"
	redisrepo "github.com/kirinyoku/gigledger/internal/repository/redis"
	"github.com/kirinyoku/gigledger/internal/service"
	"github.com/kirinyoku/gigledger/internal/service/concert"
	"github.com/shopspring/decimal"
)

const idemLockTTL = 60 * time.Second

// @Summary  Create concert
// @Description Caller must be an approved organiser. Either metadata_uri or details is used; details are stored as a content-addressed document.
// @Security BearerAuth
// @Param    req body  CreateConcertRequest true "terms"
// @Success  201 {object} CreateConcertResponse
// @Failure  400 {object} ErrorResponse "invalid configuration"
// @Failure  403 {object} ErrorResponse "not an approved organiser"
// @Router   /concerts [post]
func handleCreateConcert(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := callerOf(c)

		var req CreateConcertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		terms, err := req.terms()
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		var (
			id  int64
			uri = terms.MetadataURI
		)
		if req.Details != nil {
			id, uri, err = svcs.Concert.CreateConcertWithDetails(c.Request.Context(), caller, terms, *req.Details)
		} else {
			id, err = svcs.Concert.CreateConcert(c.Request.Context(), caller, terms)
		}
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, CreateConcertResponse{ConcertID: id, MetadataURI: uri})
	}
}

// @Summary  Venue approval
// @Security BearerAuth
// @Param    id  path  int  true  "Concert ID"
// @Success  200 {object} StateResponse
// @Failure  403 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse
// @Router   /concerts/{id}/venue-approval [post]
func handleVenueApproval(svcs *service.Services) gin.HandlerFunc {
	return handleApproval(svcs.Concert.ApproveAsVenue)
}

// @Summary  Artist approval
// @Description Moves to presale, or straight to general sale when there is no presale tier.
// @Security BearerAuth
// @Param    id  path  int  true  "Concert ID"
// @Success  200 {object} StateResponse
// @Failure  403 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse
// @Router   /concerts/{id}/artist-approval [post]
func handleArtistApproval(svcs *service.Services) gin.HandlerFunc {
	return handleApproval(svcs.Concert.ApproveAsArtist)
}

func handleApproval(approve func(ctx context.Context, caller domain.Identity, id int64) (domain.State, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := callerOf(c)
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		st, err := approve(c.Request.Context(), caller, id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, StateResponse{ConcertID: id, State: st})
	}
}

// @Summary  Organiser state update
// @Description Organiser moves the concert along (sold_out to live, presale to general_sale, general_sale to sold_out) or cancels it before it goes live.
// @Security BearerAuth
// @Param    id  path  int  true  "Concert ID"
// @Param    req body  UpdateStateRequest true "target state"
// @Success  200 {object} StateResponse
// @Failure  403 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse
// @Router   /concerts/{id}/state [post]
func handleUpdateState(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := callerOf(c)
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req UpdateStateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		target, ok := domain.ParseState(req.State)
		if !ok {
			badRequest(c, "unknown state "+req.State)
			return
		}

		st, err := svcs.Concert.OrganiserUpdateState(c.Request.Context(), caller, id, target)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, StateResponse{ConcertID: id, State: st})
	}
}

// @Summary  Buy ticket (idempotent)
// @Description Pays value wei for one ticket and one supporter token at the current tier price. Anything above the price is retained by the platform.
// @Security BearerAuth
// @Param    id  path  int  true  "Concert ID"
// @Param    req body  BuyTicketRequest true "payment"
// @Param    Idempotency-Key header string false "replays the first result"
// @Success  201 {object} concert.Purchase
// @Failure  402 {object} ErrorResponse "insufficient payment"
// @Failure  409 {object} ErrorResponse "sale not open / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /concerts/{id}/tickets [post]
func handleBuyTicket(svcs *service.Services, idem IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := callerOf(c)
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		var req BuyTicketRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		value, err := decimal.NewFromString(req.Value)
		if err != nil {
			badRequest(c, "invalid value")
			return
		}

		ctx := c.Request.Context()

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var (
			storageKey string
			owner      string
		)
		if idem != nil && idemKey != "" {
			storageKey = redisrepo.KeyIdemPurchase(id, caller.String(), idemKey)

			if replayed := replayIdem(c, idem, storageKey, idemKey); replayed {
				return
			}

			var locked bool
			owner, locked, err = idem.Acquire(ctx, storageKey, idemLockTTL)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if replayed := replayIdem(c, idem, storageKey, idemKey); replayed {
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		p, err := svcs.Concert.BuyTicket(ctx, caller, id, concert.PurchaseRequest{
			TicketURI:    req.TicketURI,
			SupporterURI: req.SupporterURI,
			Value:        value,
		})
		if err != nil {
			if storageKey != "" {
				_ = idem.Release(ctx, storageKey, owner)
			}
			respondErr(c, err)
			return
		}

		b, err := json.Marshal(p)
		if err != nil {
			respondErr(c, err)
			return
		}

		if storageKey != "" {
			if err := idem.SaveResult(ctx, storageKey, b); err != nil {
				c.Error(err)
			}
			c.Header("Idempotency-Key", idemKey)
		}

		c.Data(http.StatusCreated, "application/json; charset=utf-8", b)
	}
}

// replayIdem answers with the stored purchase when key already completed.
// An in-flight key is left for the caller to handle.
func replayIdem(c *gin.Context, idem IdempotencyStore, key, idemKey string) bool {
	payload, st, err := idem.Lookup(c.Request.Context(), key)
	if err != nil || st != redisrepo.IdemDone {
		return false
	}

	c.Header("Idempotency-Key", idemKey)
	c.Header("Idempotent-Replayed", "true")
	c.Data(http.StatusCreated, "application/json; charset=utf-8", payload)
	return true
}

// @Summary  Trigger payout
// @Description Splits the balance of a live concert between artist, organiser and venue. Runs once.
// @Security BearerAuth
// @Param    id  path  int  true  "Concert ID"
// @Success  200 {object} SettlementResponse
// @Failure  403 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "not live / already settled"
// @Failure  502 {object} ErrorResponse "transfer failure"
// @Router   /concerts/{id}/payout [post]
func handleTriggerPayout(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := callerOf(c)
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}

		st, err := svcs.Concert.TriggerPayout(c.Request.Context(), caller, id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toSettlementResponse(st))
	}
}
