package model

// All returns every persisted model, parents before children, in migration order.
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&CategoryModel{},
		&ExpenseModel{},
		&IncomeModel{},
		&MonthlyReviewModel{},
		&MonthlyCategoryReviewModel{},
	}
}
