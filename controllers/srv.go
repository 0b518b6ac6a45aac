package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"libstack/app"
	"libstack/db"
	"libstack/session"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo      *db.Repo
	AppSess   *session.AppSessionStore
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	return &Srv{
		Repo:      db.NewRepo(a.DB, a.LoanPolicy()),
		AppSess:   a.AppSessions(),
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

func (s *Srv) setAppCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.AppSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

// respondErr maps the db error taxonomy onto HTTP. Business failures carry
// a machine-readable kind so clients can tell retryable from terminal.
func respondErr(c *gin.Context, err error) {
	kind, status := "INTERNAL", http.StatusInternalServerError
	switch {
	case errors.Is(err, db.ErrUserNotFound),
		errors.Is(err, db.ErrBookNotFound),
		errors.Is(err, db.ErrLoanNotFound),
		errors.Is(err, db.ErrCategoryNotFound):
		kind, status = "NOT_FOUND", http.StatusNotFound
	case errors.Is(err, db.ErrDuplicateActiveLoan):
		kind, status = "DUPLICATE_ACTIVE_LOAN", http.StatusConflict
	case errors.Is(err, db.ErrLoanLimitReached):
		kind, status = "LOAN_LIMIT_REACHED", http.StatusConflict
	case errors.Is(err, db.ErrOutOfStock):
		kind, status = "OUT_OF_STOCK", http.StatusConflict
	case errors.Is(err, db.ErrAlreadyReturned):
		kind, status = "ALREADY_RETURNED", http.StatusConflict
	case errors.Is(err, db.ErrForbidden):
		kind, status = "FORBIDDEN", http.StatusForbidden
	case errors.Is(err, db.ErrBooksStillOnLoan):
		kind, status = "BOOKS_ON_LOAN", http.StatusConflict
	case errors.Is(err, db.ErrCategoryExists), errors.Is(err, db.ErrISBNExists):
		kind, status = "ALREADY_EXISTS", http.StatusConflict
	case errors.Is(err, db.ErrTransient):
		kind, status = "TRANSIENT_FAILURE", http.StatusServiceUnavailable
	case errors.Is(err, db.ErrInvariantViolation):
		kind, status = "INVARIANT_VIOLATION", http.StatusInternalServerError
	}
	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	c.JSON(status, app.H{"error": kind, "message": err.Error()})
}

func currentUser(c *gin.Context) (id string, isAdmin bool, ok bool) {
	v, ok := c.Get("userID")
	if !ok {
		return "", false, false
	}
	id, _ = v.(string)
	if a, exists := c.Get("isAdmin"); exists {
		isAdmin, _ = a.(bool)
	}
	return id, isAdmin, id != ""
}
