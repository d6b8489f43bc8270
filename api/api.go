package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/korafinance/kora"
	"github.com/korafinance/kora/api/middleware"
	"github.com/korafinance/kora/config"
)

type Api struct {
	kora   *kora.Kora
	router *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.POST("/customers", a.CreateCustomer)
	router.GET("/customers", a.GetAllCustomers)
	router.GET("/customers/:id", a.GetCustomer)

	// Gin requires one wildcard name per segment, so the deposit and
	// withdraw routes reuse :id even though they carry the account number.
	router.POST("/accounts", a.CreateAccount)
	router.GET("/accounts", a.GetAllAccounts)
	router.GET("/accounts/:id", a.GetAccount)
	router.POST("/accounts/:id/deposit", a.Deposit)
	router.POST("/accounts/:id/withdraw", a.Withdraw)

	router.POST("/transfer", a.Transfer)

	router.GET("/transactions", a.GetAllTransactions)
	router.GET("/transactions/:id", a.GetTransaction)

	return a.router
}

func NewAPI(k *kora.Kora) *Api {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	conf, err := config.Fetch()
	if err == nil {
		r.Use(middleware.RateLimitMiddleware(conf))
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, "server running...")
	})

	return &Api{kora: k, router: r}
}
