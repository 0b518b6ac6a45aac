package controllers

import (
	"net/http"
	"strconv"

	"libstack/app"
	"libstack/db"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

// List supports search, category and availability filters, paged.
func (bc *BookController) List(c *gin.Context) {
	q := db.BooksQuery{
		Q:          c.Query("q"),
		CategoryID: c.Query("category"),
		Available:  c.Query("available") == "true",
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))

	res, err := bc.Repo.ListBooks(c.Request.Context(), q)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (bc *BookController) Get(c *gin.Context) {
	b, err := bc.Repo.FindBookByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BookController) Create(c *gin.Context) {
	var in struct {
		Title       string  `json:"title" binding:"required"`
		Author      string  `json:"author" binding:"required"`
		ISBN        string  `json:"isbn" binding:"required"`
		Description string  `json:"description"`
		CoverURL    string  `json:"coverUrl"`
		CategoryID  *string `json:"categoryId"`
		TotalCopies int     `json:"totalCopies"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	b, err := bc.Repo.CreateBook(c.Request.Context(), uuid.NewString(), db.CreateBookInput{
		Title:       in.Title,
		Author:      in.Author,
		ISBN:        in.ISBN,
		Description: in.Description,
		CoverURL:    in.CoverURL,
		CategoryID:  in.CategoryID,
		TotalCopies: in.TotalCopies,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (bc *BookController) Update(c *gin.Context) {
	var in struct {
		Title       *string `json:"title"`
		Author      *string `json:"author"`
		ISBN        *string `json:"isbn"`
		Description *string `json:"description"`
		CoverURL    *string `json:"coverUrl"`
		CategoryID  *string `json:"categoryId"`
		TotalCopies *int    `json:"totalCopies"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}

	b, err := bc.Repo.UpdateBook(c.Request.Context(), c.Param("id"), db.UpdateBookInput{
		Title:       in.Title,
		Author:      in.Author,
		ISBN:        in.ISBN,
		Description: in.Description,
		CoverURL:    in.CoverURL,
		CategoryID:  in.CategoryID,
		TotalCopies: in.TotalCopies,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BookController) Delete(c *gin.Context) {
	if err := bc.Repo.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
