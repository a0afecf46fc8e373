package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"palette/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetEndpoints(t *testing.T) {
	s := newTestServer(t)
	owner, outsider := s.signUp("owner"), s.signUp("outsider")
	group := s.createGroup(owner, "그룹1")
	path := fmt.Sprintf("/group/%d/budget", group.ID)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, owner, nil, "").Code)
	w := s.doJSON(http.MethodPost, path, owner, dto.BudgetCreateRequest{Budget: 1000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusConflict, s.doJSON(http.MethodPost, path, owner, dto.BudgetCreateRequest{Budget: 1}).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, path, outsider, nil, "").Code)

	w = s.doJSON(http.MethodPost, path+"/expense", owner, dto.ExpenseRequest{Content: "택시", Price: 300, PaidAt: "2022-07-10"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	expense := decode[dto.ExpenseResponse](t, w)
	assert.Equal(t, "2022-07-10", expense.PaidAt)

	w = s.doJSON(http.MethodPost, path+"/expense", owner, dto.ExpenseRequest{Content: "", Price: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "지출 내용을 입력해주세요.", decode[Response](t, w).Error)

	w = s.doJSON(http.MethodPut, path, owner, map[string]int64{"budget": 5000})
	require.Equal(t, http.StatusOK, w.Code)
	budget := decode[dto.BudgetResponse](t, w)
	assert.Equal(t, int64(5000), budget.TotalBudget)
	assert.Equal(t, int64(300), budget.Spent)
	assert.Equal(t, int64(4700), budget.Remaining)
	require.Len(t, budget.Expenses, 1)

	w = s.doJSON(http.MethodPut, path, owner, map[string]int64{"budget": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	expensePath := fmt.Sprintf("%s/expense/%d", path, expense.ID)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, expensePath, owner, nil, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, expensePath, owner, nil, "").Code)

	require.Equal(t, http.StatusOK, s.doJSON(http.MethodPost, path+"/expense", owner, dto.ExpenseRequest{Content: "점심", Price: 20}).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, path, owner, nil, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, owner, nil, "").Code)

	var expenses int64
	require.NoError(t, s.db.Table("expenses").Count(&expenses).Error)
	assert.Zero(t, expenses)
}
