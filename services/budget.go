package services

import (
	"context"
	"fmt"
	"strings"

	"palette/dto"
	"palette/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BudgetService struct {
	db *gorm.DB
}

func NewBudgetService(db *gorm.DB) *BudgetService {
	return &BudgetService{db: db}
}

// Create gives the group its budget, a group has at most one
func (s *BudgetService) Create(ctx context.Context, groupID uint64, member *models.Member, r dto.BudgetCreateRequest) (*models.Budget, error) {
	if err := requireGroupMember(ctx, s.db, groupID, member.ID); err != nil {
		return nil, err
	}
	group := models.Group{}
	if err := s.db.WithContext(ctx).First(&group, groupID).Error; err != nil {
		return nil, notFound(err, fmt.Sprintf("group %d", groupID))
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Budget{}).Where("group_id = ?", groupID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrBudgetExists
	}
	budget := models.NewBudget(&group, r.Budget)
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&budget).Error; err != nil {
		return nil, duplicate(err, ErrBudgetExists)
	}
	return &budget, nil
}

func (s *BudgetService) FindByGroup(ctx context.Context, groupID uint64, member *models.Member) (*models.Budget, error) {
	if err := requireGroupMember(ctx, s.db, groupID, member.ID); err != nil {
		return nil, err
	}
	return s.load(ctx, s.db, groupID)
}

func (s *BudgetService) load(ctx context.Context, tx *gorm.DB, groupID uint64) (*models.Budget, error) {
	budget := models.Budget{}
	err := tx.WithContext(ctx).
		Preload("Expenses", func(db *gorm.DB) *gorm.DB {
			return db.Order("paid_at, id")
		}).
		Where("group_id = ?", groupID).
		First(&budget).Error
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("budget of group %d", groupID))
	}
	return &budget, nil
}

// Update changes the total only, expenses stay as they are
func (s *BudgetService) Update(ctx context.Context, groupID uint64, member *models.Member, r dto.BudgetUpdateDto) (*models.Budget, error) {
	budget, err := s.FindByGroup(ctx, groupID, member)
	if err != nil {
		return nil, err
	}
	budget.Update(r)
	if err = s.db.WithContext(ctx).Omit(clause.Associations).Save(budget).Error; err != nil {
		return nil, err
	}
	return budget, nil
}

// Delete removes the budget together with all of its expenses
func (s *BudgetService) Delete(ctx context.Context, groupID uint64, member *models.Member) error {
	budget, err := s.FindByGroup(ctx, groupID, member)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Select("Expenses").Delete(budget).Error
	})
}

func (s *BudgetService) AddExpense(ctx context.Context, groupID uint64, member *models.Member, r dto.ExpenseRequest) (*models.Expense, error) {
	budget, err := s.FindByGroup(ctx, groupID, member)
	if err != nil {
		return nil, err
	}
	paidAt, err := models.ParseDate(r.PaidAt)
	if err != nil {
		return nil, err
	}
	budget.AddExpense(models.Expense{
		Content: strings.TrimSpace(r.Content),
		Price:   r.Price,
		PaidAt:  paidAt,
	})
	expense := &budget.Expenses[len(budget.Expenses)-1]
	if err = s.db.WithContext(ctx).Omit(clause.Associations).Create(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

// RemoveExpense detaches the expense from the budget and deletes its row
func (s *BudgetService) RemoveExpense(ctx context.Context, groupID uint64, member *models.Member, expenseID uint64) error {
	budget, err := s.FindByGroup(ctx, groupID, member)
	if err != nil {
		return err
	}
	removed := budget.RemoveExpense(expenseID)
	if removed == nil {
		return fmt.Errorf("expense %d: %w", expenseID, ErrNotFound)
	}
	return s.db.WithContext(ctx).Delete(removed).Error
}
