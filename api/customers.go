package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	model2 "github.com/korafinance/kora/api/model"
)

func (a Api) CreateCustomer(c *gin.Context) {
	var newCustomer model2.CreateCustomer
	if err := c.ShouldBindJSON(&newCustomer); err != nil {
		c.JSON(http.StatusBadRequest, model2.APIResponse{Message: err.Error()})
		return
	}

	if err := newCustomer.ValidateCreateCustomer(); err != nil {
		c.JSON(http.StatusBadRequest, model2.APIResponse{Message: err.Error()})
		return
	}

	resp, err := a.kora.CreateCustomer(newCustomer.ToCustomer())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model2.APIResponse{Message: "Customer created", Data: resp})
}

func (a Api) GetAllCustomers(c *gin.Context) {
	customers, err := a.kora.GetAllCustomers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model2.APIResponse{Message: "Customers list", Data: customers})
}

func (a Api) GetCustomer(c *gin.Context) {
	id := c.Param("id")

	customer, err := a.kora.GetCustomer(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model2.APIResponse{Message: "Customer fetched", Data: customer})
}
