package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/service"
)

// @Summary  Approve role (operator)
// @Security BearerAuth
// @Param    role path  string  true  "organiser | venue | artist"
// @Param    req  body  ApproveRoleRequest true "identity"
// @Success  201 {object} RoleResponse
// @Failure  403 {object} ErrorResponse
// @Router   /admin/roles/{role} [post]
func handleApproveRole(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := callerOf(c)
		role := domain.Role(c.Param("role"))

		var req ApproveRoleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id, err := domain.ParseIdentity(req.Identity)
		if err != nil {
			badRequest(c, "invalid identity")
			return
		}

		if err := svcs.Registry.Approve(c.Request.Context(), caller, role, id); err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, RoleResponse{Role: role, Identity: id, Approved: true})
	}
}

// @Summary  Revoke role (operator)
// @Security BearerAuth
// @Param    role     path  string  true  "organiser | venue | artist"
// @Param    identity path  string  true  "account"
// @Success  204
// @Failure  403 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /admin/roles/{role}/{identity} [delete]
func handleRevokeRole(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := callerOf(c)
		id, ok := parseIdentityParam(c, "identity")
		if !ok {
			return
		}

		respondErr(c, svcs.Registry.Revoke(c.Request.Context(), caller, domain.Role(c.Param("role")), id))
	}
}

// @Summary  Approve minter (operator)
// @Security BearerAuth
// @Param    kind path  string  true  "ticket | supporter"
// @Param    req  body  SetMinterRequest true "minter"
// @Success  204
// @Failure  403 {object} ErrorResponse
// @Router   /admin/minters/{kind} [post]
func handleSetMinter(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := callerOf(c)

		iss, err := svcs.Issuer(domain.TokenKind(c.Param("kind")))
		if err != nil {
			respondErr(c, err)
			return
		}

		var req SetMinterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		minter, err := domain.ParseIdentity(req.Minter)
		if err != nil {
			badRequest(c, "invalid minter")
			return
		}

		respondErr(c, iss.SetApprovedMinter(c.Request.Context(), caller, minter))
	}
}

// @Summary  Role lookup
// @Param    role     path  string  true  "organiser | venue | artist"
// @Param    identity path  string  true  "account"
// @Success  200 {object} RoleResponse
// @Router   /roles/{role}/{identity} [get]
func handleIsApproved(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIdentityParam(c, "identity")
		if !ok {
			return
		}
		role := domain.Role(c.Param("role"))

		approved, err := svcs.Registry.IsApproved(c.Request.Context(), role, id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, RoleResponse{Role: role, Identity: id, Approved: approved})
	}
}
