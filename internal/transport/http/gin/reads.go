package httpgin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/issuer"
	"github.com/kirinyoku/gigledger/internal/ledger"
	"github.com/kirinyoku/gigledger/internal/service"
	"github.com/kirinyoku/gigledger/internal/service/concert"
)

// @Summary  List concerts
// @Param    limit  query  int  false  "page size"
// @Param    offset query  int  false  "offset"
// @Success  200  {array}  ConcertResponse
// @Router   /concerts [get]
func handleListConcerts(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseIntDefault(c.Query("limit"), 0)
		offset := parseIntDefault(c.Query("offset"), 0)

		list, err := svcs.Query.ListConcerts(c.Request.Context(), limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}

		out := make([]ConcertResponse, len(list))
		for i := range list {
			out[i] = toConcertResponse(&list[i])
		}
		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=5")
	}
}

// @Summary  Next concert id
// @Success  200  {object}  NextIDResponse
// @Router   /concerts/next-id [get]
func handleNextConcertID(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := svcs.Query.NextConcertID(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, NextIDResponse{NextConcertID: id})
	}
}

// @Summary  Get concert
// @Param    id  path  int  true  "Concert ID"
// @Success  200  {object}  ConcertResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /concerts/{id} [get]
func handleGetConcert(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		con, err := svcs.Query.GetConcert(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, toConcertResponse(con), "public, max-age=15")
	}
}

// @Summary  Get concert state
// @Param    id  path  int  true  "Concert ID"
// @Success  200  {object}  StateResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /concerts/{id}/state [get]
func handleGetState(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		st, err := svcs.Query.GetState(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, StateResponse{ConcertID: id, State: st}, "public, max-age=5")
	}
}

// @Summary  Token holders (attendees or supporters)
// @Param    id  path  int  true  "Concert ID"
// @Success  200  {object}  HoldersResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /concerts/{id}/attendees [get]
// @Router   /concerts/{id}/supporters [get]
func handleHolders(svcs *service.Services, kind domain.TokenKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		holders, err := svcs.Query.Holders(c.Request.Context(), kind, id)
		if err != nil {
			respondErr(c, err)
			return
		}
		if holders == nil {
			holders = []domain.Identity{}
		}
		c.JSON(http.StatusOK, HoldersResponse{ConcertID: id, Kind: kind, Holders: holders})
	}
}

// @Summary  Status notification history
// @Param    id        path   int  true   "Concert ID"
// @Param    from_seq  query  int  false  "first journal sequence number"
// @Param    limit     query  int  false  "page size"
// @Success  200  {array}  domain.StatusNotification
// @Failure  404  {object}  ErrorResponse
// @Router   /concerts/{id}/notifications [get]
func handleNotifications(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		from, err := strconv.ParseInt(c.DefaultQuery("from_seq", "0"), 10, 64)
		if err != nil {
			badRequest(c, "invalid from_seq")
			return
		}

		ns, err := svcs.Query.Notifications(c.Request.Context(), id, from, parseIntDefault(c.Query("limit"), 0))
		if err != nil {
			respondErr(c, err)
			return
		}
		if ns == nil {
			ns = []domain.StatusNotification{}
		}
		c.JSON(http.StatusOK, ns)
	}
}

// @Summary  Settlement of a concert
// @Param    id  path  int  true  "Concert ID"
// @Success  200  {object}  SettlementResponse
// @Failure  404  {object}  ErrorResponse "unknown or not settled"
// @Router   /concerts/{id}/settlement [get]
func handleGetSettlement(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		st, err := svcs.Query.Settlement(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		// a settlement never changes
		writeJSONWithCache(c, http.StatusOK, toSettlementResponse(st), "public, max-age=3600")
	}
}

// @Summary  Get token
// @Param    kind  path  string  true  "ticket | supporter"
// @Param    id    path  int     true  "Token ID"
// @Success  200  {object}  TokenResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /tokens/{kind}/{id} [get]
func handleGetToken(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		iss, err := svcs.Issuer(domain.TokenKind(c.Param("kind")))
		if err != nil {
			respondErr(c, err)
			return
		}
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		tok, err := iss.Token(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, toTokenResponse(tok), "public, max-age=60")
	}
}

// @Summary  Ticket QR code
// @Param    id  path  int  true  "Ticket ID"
// @Produce  png
// @Success  200
// @Failure  404  {object}  ErrorResponse
// @Router   /tickets/{id}/qr.png [get]
func handleTicketQR(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		tok, err := svcs.Tickets.Token(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		png, err := issuer.QRCode(tok)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Header("Cache-Control", "private, max-age=300")
		c.Data(http.StatusOK, "image/png", png)
	}
}

// @Summary  Account balance
// @Param    identity  path  string  true  "account"
// @Success  200  {object}  BalanceResponse
// @Router   /accounts/{identity}/balance [get]
func handleBalance(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdentityParam(c, "identity")
		if !ok {
			return
		}
		b, err := svcs.Query.Balance(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, BalanceResponse{Identity: b.Owner, Balance: b.Balance})
	}
}

// @Summary  Concert metadata document
// @Param    hash  path  string  true  "content hash, bare or blake3:<hex>"
// @Success  200  {object}  DocumentResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /metadata/{hash} [get]
func handleGetMetadata(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := svcs.Query.Document(c.Request.Context(), c.Param("hash"))
		if err != nil {
			respondErr(c, err)
			return
		}

		h, err := ledger.ParseContentHash(doc.Hash)
		if err != nil {
			respondErr(c, err)
			return
		}
		details, err := concert.DecodeDetails(doc.Body)
		if err != nil {
			respondErr(c, err)
			return
		}

		// content addressed, so it can be cached forever
		writeJSONWithCache(c, http.StatusOK, DocumentResponse{
			Hash:    doc.Hash,
			URI:     ledger.ContentURI(h),
			Details: details,
		}, "public, max-age=31536000, immutable")
	}
}

// @Summary  Verify the journal hash chain
// @Success  200  {object}  query.LedgerReport
// @Failure  409  {object}  query.LedgerReport "chain broken"
// @Router   /ledger/verify [get]
func handleVerifyLedger(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		rep, err := svcs.Query.VerifyLedger(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		status := http.StatusOK
		if !rep.Valid {
			status = http.StatusConflict
		}
		c.JSON(status, rep)
	}
}
