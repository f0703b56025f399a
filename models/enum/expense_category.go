package enum

type ExpenseCategory string

const (
	ExpenseCategoryGas         ExpenseCategory = "gas"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategorySupplies    ExpenseCategory = "supplies"
	ExpenseCategoryPhone       ExpenseCategory = "phone"
	ExpenseCategoryInsurance   ExpenseCategory = "insurance"
	ExpenseCategoryParking     ExpenseCategory = "parking"
	ExpenseCategoryOther       ExpenseCategory = "other"
)
