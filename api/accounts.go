package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	model2 "github.com/korafinance/kora/api/model"
	"github.com/korafinance/kora/model"
)

func (a Api) CreateAccount(c *gin.Context) {
	var newAccount model2.CreateAccount
	if err := c.ShouldBindJSON(&newAccount); err != nil {
		c.JSON(http.StatusBadRequest, model2.APIResponse{Message: err.Error()})
		return
	}

	if err := newAccount.ValidateCreateAccount(); err != nil {
		c.JSON(http.StatusBadRequest, model2.APIResponse{Message: err.Error()})
		return
	}

	resp, err := a.kora.CreateAccount(c.Request.Context(), newAccount.CustomerID, newAccount.InitialDeposit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model2.APIResponse{Message: "Account created", Data: resp})
}

func (a Api) GetAllAccounts(c *gin.Context) {
	accounts, err := a.kora.GetAllAccounts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model2.APIResponse{Message: "Accounts list", Data: accounts})
}

func (a Api) GetAccount(c *gin.Context) {
	id := c.Param("id")

	// Accept either the internal ID or the external account number.
	var account *model.Account
	var err error
	if strings.HasPrefix(id, "acc_") {
		account, err = a.kora.GetAccount(id)
	} else {
		account, err = a.kora.GetAccountByNumber(id)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model2.APIResponse{Message: "Account fetched", Data: account})
}

func (a Api) Deposit(c *gin.Context) {
	number := c.Param("id")

	var req model2.MoveFunds
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model2.APIResponse{Message: err.Error()})
		return
	}

	if err := req.ValidateMoveFunds(); err != nil {
		c.JSON(http.StatusBadRequest, model2.APIResponse{Message: err.Error()})
		return
	}

	account, err := a.kora.Deposit(c.Request.Context(), number, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model2.APIResponse{Message: "Deposited", Data: account})
}

func (a Api) Withdraw(c *gin.Context) {
	number := c.Param("id")

	var req model2.MoveFunds
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model2.APIResponse{Message: err.Error()})
		return
	}

	if err := req.ValidateMoveFunds(); err != nil {
		c.JSON(http.StatusBadRequest, model2.APIResponse{Message: err.Error()})
		return
	}

	account, err := a.kora.Withdraw(c.Request.Context(), number, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model2.APIResponse{Message: "Withdrawn", Data: account})
}

func (a Api) Transfer(c *gin.Context) {
	var req model2.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model2.APIResponse{Message: err.Error()})
		return
	}

	if err := req.ValidateTransferRequest(); err != nil {
		c.JSON(http.StatusBadRequest, model2.APIResponse{Message: err.Error()})
		return
	}

	txn, err := a.kora.Transfer(c.Request.Context(), req.FromAccount, req.ToAccount, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model2.APIResponse{Message: "Transfer completed", Data: txn})
}
