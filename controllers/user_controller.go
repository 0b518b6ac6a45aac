package controllers

import (
	"net/http"
	"strconv"

	"libstack/app"
	"libstack/models"

	"github.com/gin-gonic/gin"
)

type UserController struct{ *Srv }

func NewUserController(s *Srv) *UserController { return &UserController{Srv: s} }

// ListUsers: admin listing with keyword filter over email/name, paged.
func (uc *UserController) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := uc.Repo.ListUsers(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (uc *UserController) GetUser(c *gin.Context) {
	u, err := uc.Repo.FindUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (uc *UserController) SetRole(c *gin.Context) {
	var in struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}
	if in.Role != models.RoleUser && in.Role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": "role must be USER or ADMIN"})
		return
	}
	u, err := uc.Repo.SetUserRole(c.Request.Context(), c.Param("id"), in.Role)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DeleteUser removes the account and revokes its sessions. Refused while
// the user still has books out.
func (uc *UserController) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := uc.Repo.DeleteUserByID(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	_ = uc.AppSess.RevokeAllForUser(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}
