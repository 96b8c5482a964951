package core

// Summarize folds a user's transactions into a Summary. An empty set yields
// {0, 0, 0}. Balance always equals Income minus Expense because all three are
// derived from the same exact cent sums.
func Summarize(transactions []Transaction) Summary {
	var income, expense int64
	for _, t := range transactions {
		if t.Amount.Cents >= 0 {
			income += t.Amount.Cents
		} else {
			expense += -t.Amount.Cents
		}
	}
	return Summary{
		Balance: Money{Cents: income - expense},
		Income:  Money{Cents: income},
		Expense: Money{Cents: expense},
	}
}
