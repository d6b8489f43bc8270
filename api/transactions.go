package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	model2 "github.com/korafinance/kora/api/model"
)

func (a Api) GetAllTransactions(c *gin.Context) {
	transactions, err := a.kora.GetAllTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model2.APIResponse{Message: "Transactions list", Data: transactions})
}

func (a Api) GetTransaction(c *gin.Context) {
	id := c.Param("id")

	txn, err := a.kora.GetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model2.APIResponse{Message: "Transaction fetched", Data: txn})
}
