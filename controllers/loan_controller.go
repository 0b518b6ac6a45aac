package controllers

import (
	"net/http"
	"strconv"

	"libstack/app"

	"github.com/gin-gonic/gin"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

// Borrow takes one copy of a book out for the current user.
func (lc *LoanController) Borrow(c *gin.Context) {
	bookID := c.Param("bookId")
	if bookID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": "missing book id"})
		return
	}
	uid, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	loan, err := lc.Repo.BorrowBook(c.Request.Context(), uid, bookID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// Return closes a loan. Regular users may only return their own loans;
// admins may return anyone's.
func (lc *LoanController) Return(c *gin.Context) {
	loanID := c.Param("loanId")
	if loanID == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": "missing loan id"})
		return
	}
	uid, isAdmin, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}

	loan, err := lc.Repo.ReturnLoan(c.Request.Context(), loanID, uid, isAdmin)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

// MyLoans lists the current user's open loans with derived overdue flags.
func (lc *LoanController) MyLoans(c *gin.Context) {
	uid, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	rows, err := lc.Repo.ListActiveLoans(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"loans": rows})
}

func (lc *LoanController) MyLoanCount(c *gin.Context) {
	uid, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	n, err := lc.Repo.CountActiveLoans(c.Request.Context(), uid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"count": n, "max": lc.Repo.Policy.MaxActiveLoans})
}

// MyHistory is the paged borrow history, returned loans included.
func (lc *LoanController) MyHistory(c *gin.Context) {
	uid, _, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	res, err := lc.Repo.ListLoansByUser(c.Request.Context(), uid, page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListAll is the admin view over every loan.
func (lc *LoanController) ListAll(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := lc.Repo.ListAllLoans(c.Request.Context(), page, size)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Overdue lists active loans past their due date.
func (lc *LoanController) Overdue(c *gin.Context) {
	rows, err := lc.Repo.ListOverdueLoans(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"loans": rows})
}
