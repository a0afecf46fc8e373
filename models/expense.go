package models

type Expense struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	BudgetID  uint64  `gorm:"not null;index"`
	Budget    *Budget `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Content   string  `gorm:"type:varchar(300)"`
	Price     int64   `gorm:"not null"`
	PaidAt    int64   `gorm:"index"` // unix, start of the day in UTC
}
