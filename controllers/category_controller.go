package controllers

import (
	"net/http"

	"libstack/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoryController struct{ *Srv }

func NewCategoryController(s *Srv) *CategoryController { return &CategoryController{Srv: s} }

func (cc *CategoryController) List(c *gin.Context) {
	cs, err := cc.Repo.ListCategories(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"categories": cs})
}

func (cc *CategoryController) Get(c *gin.Context) {
	cat, err := cc.Repo.FindCategoryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

type categoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (cc *CategoryController) Create(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}
	cat, err := cc.Repo.CreateCategory(c.Request.Context(), uuid.NewString(), in.Name, in.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (cc *CategoryController) Update(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "BAD_REQUEST", "message": err.Error()})
		return
	}
	cat, err := cc.Repo.UpdateCategory(c.Request.Context(), c.Param("id"), in.Name, in.Description)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (cc *CategoryController) Delete(c *gin.Context) {
	if err := cc.Repo.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
