package routes

import (
	"time"

	"libstack/app"
	"libstack/controllers"
)

func RegisterRoutes(a *app.App) {
	r := a.Router
	s := controllers.GetSrv(a)

	authCtl := controllers.NewAuthController(s)
	bookCtl := controllers.NewBookController(s)
	catCtl := controllers.NewCategoryController(s)
	loanCtl := controllers.NewLoanController(s)
	userCtl := controllers.NewUserController(s)

	authMW := app.AuthRequired(a.AppSessions(), s.Repo)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", authCtl.Login)
		auth.POST("/logout", authCtl.Logout)
		auth.GET("/me", authMW, authCtl.Me)
	}

	books := v1.Group("/books")
	{
		books.GET("", bookCtl.List) // ?q=&category=&available=&page=&size=
		books.GET("/:id", bookCtl.Get)

		booksAdmin := books.Group("", authMW, adminMW)
		booksAdmin.POST("", bookCtl.Create)
		booksAdmin.PUT("/:id", bookCtl.Update)
		booksAdmin.DELETE("/:id", bookCtl.Delete)
	}

	categories := v1.Group("/categories")
	{
		categories.GET("", catCtl.List)
		categories.GET("/:id", catCtl.Get)

		catAdmin := categories.Group("", authMW, adminMW)
		catAdmin.POST("", catCtl.Create)
		catAdmin.PUT("/:id", catCtl.Update)
		catAdmin.DELETE("/:id", catCtl.Delete)
	}

	loans := v1.Group("/loans", authMW, seenMW)
	{
		loans.POST("/borrow/:bookId", loanCtl.Borrow)
		loans.POST("/return/:loanId", loanCtl.Return)
		loans.GET("/my-loans", loanCtl.MyLoans)
		loans.GET("/my-loans/count", loanCtl.MyLoanCount)
		loans.GET("/my-history", loanCtl.MyHistory) // ?page=&size=
	}

	admin := v1.Group("/admin", authMW, adminMW)
	{
		admin.GET("/users", userCtl.ListUsers) // ?q=&page=&size=
		admin.GET("/users/:id", userCtl.GetUser)
		admin.PUT("/users/:id/role", userCtl.SetRole)
		admin.DELETE("/users/:id", userCtl.DeleteUser)

		admin.GET("/loans", loanCtl.ListAll) // ?page=&size=
		admin.GET("/loans/overdue", loanCtl.Overdue)
	}
}
