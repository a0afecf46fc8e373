package handlers

import (
	"net/http"

	"palette/dto"
	"palette/models"
	"palette/services"

	"github.com/gin-gonic/gin"
)

type BudgetHandler struct {
	budgets *services.BudgetService
}

func (h *BudgetHandler) Create(c *gin.Context, member *models.Member) {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return
	}
	request := dto.BudgetCreateRequest{}
	if !bindJSON(c, &request) {
		return
	}
	budget, err := h.budgets.Create(c, groupID, member, request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ToBudgetResponse(budget))
}

func (h *BudgetHandler) Get(c *gin.Context, member *models.Member) {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return
	}
	budget, err := h.budgets.FindByGroup(c, groupID, member)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ToBudgetResponse(budget))
}

func (h *BudgetHandler) Update(c *gin.Context, member *models.Member) {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return
	}
	request := dto.BudgetUpdateDto{}
	if !bindJSON(c, &request) {
		return
	}
	budget, err := h.budgets.Update(c, groupID, member, request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ToBudgetResponse(budget))
}

func (h *BudgetHandler) Delete(c *gin.Context, member *models.Member) {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return
	}
	if err := h.budgets.Delete(c, groupID, member); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func (h *BudgetHandler) AddExpense(c *gin.Context, member *models.Member) {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return
	}
	request := dto.ExpenseRequest{}
	if !bindJSON(c, &request) {
		return
	}
	expense, err := h.budgets.AddExpense(c, groupID, member, request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ToExpenseResponse(expense))
}

func (h *BudgetHandler) RemoveExpense(c *gin.Context, member *models.Member) {
	groupID, ok := paramID(c, "groupId")
	if !ok {
		return
	}
	expenseID, ok := paramID(c, "expenseId")
	if !ok {
		return
	}
	if err := h.budgets.RemoveExpense(c, groupID, member, expenseID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}
