package controllers

import (
	"net/http"
	"strings"

	"libstack/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// Login finds or creates the account for an email and issues a session
// cookie. Stands in for the upstream identity provider, which is outside
// this service.
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	u, err := ac.Repo.FindOrCreateUser(c.Request.Context(), in.Email, in.Name, uuid.NewString())
	if err != nil {
		respondErr(c, err)
		return
	}
	_ = ac.Repo.TouchUserLogin(c.Request.Context(), u.ID)

	sid := uuid.NewString()
	if err := ac.AppSess.Create(c.Request.Context(), sid, u.ID); err != nil {
		respondErr(c, err)
		return
	}
	ac.setAppCookie(c.Writer, sid, ac.Cfg.SessionTTL)
	c.JSON(http.StatusOK, app.H{"user": u})
}

func (ac *AuthController) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
		_ = ac.AppSess.Delete(c.Request.Context(), ck.Value)
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   strings.HasPrefix(ac.WebOrigin, "https://"),
	})
	c.JSON(http.StatusOK, app.H{"ok": true})
}

func (ac *AuthController) Me(c *gin.Context) {
	uid, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	u, err := ac.Repo.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u})
}
