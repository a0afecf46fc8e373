package models

import "palette/dto"

// Budget is the one-to-one ledger of a Group. Expenses live and die with it.
type Budget struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	UpdatedAt   int64
	GroupID     uint64    `gorm:"not null;index:uniq_budget_group,unique"`
	Group       *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TotalBudget int64     `gorm:"not null"`
	Expenses    []Expense `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func NewBudget(group *Group, totalBudget int64) Budget {
	return Budget{
		GroupID:     group.ID,
		Group:       group,
		TotalBudget: totalBudget,
	}
}

func (b *Budget) Update(r dto.BudgetUpdateDto) {
	b.TotalBudget = r.Budget
}

func (b *Budget) AddExpense(e Expense) {
	e.BudgetID = b.ID
	b.Expenses = append(b.Expenses, e)
}

// RemoveExpense detaches an expense and returns it, nil when it isn't part of the budget.
// The caller deletes the returned row, a detached expense must not be kept.
func (b *Budget) RemoveExpense(expenseID uint64) *Expense {
	for i := range b.Expenses {
		if b.Expenses[i].ID != expenseID {
			continue
		}
		removed := b.Expenses[i]
		b.Expenses = append(b.Expenses[:i], b.Expenses[i+1:]...)
		return &removed
	}
	return nil
}

func (b *Budget) Spent() (total int64) {
	for _, e := range b.Expenses {
		total += e.Price
	}
	return
}

func (b *Budget) Remaining() int64 {
	return b.TotalBudget - b.Spent()
}
