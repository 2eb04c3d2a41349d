package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// SavingsProgress is what the savings page draws in its pie chart.
type SavingsProgress struct {
	Savings   Money
	Goal      Money
	Saved     Money // min(savings, goal)
	Remaining Money // max(goal - savings, 0)
	Percent   float64
}

// SpendingSummary compares spending against the budget.
type SpendingSummary struct {
	Budget      Money
	Spent       Money
	PercentUsed float64 // clamped to 100
	ByCategory  []CategoryAmount
}

// Dashboard is the compact overview shown after login.
type Dashboard struct {
	Name    string
	Balance Money
	Savings Money
	Spent   Money
}

// SavingsProgressOf derives the savings view. A negative goal counts as zero.
func SavingsProgressOf(r *Record) SavingsProgress {
	goal := MaxMoney(r.SavingsGoal, Zero)
	saved := MinMoney(r.Savings, goal)
	return SavingsProgress{
		Savings:   r.Savings,
		Goal:      goal,
		Saved:     saved,
		Remaining: MaxMoney(goal.Sub(r.Savings), Zero),
		Percent:   Percent(saved, goal),
	}
}

// Spent sums every subtract transaction.
func Spent(r *Record) Money {
	total := Zero
	for _, t := range r.Transactions {
		if t.Type == Subtract {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// SpendingSummaryOf derives the spending view; categories keep first-seen order
// and uncategorized spending is reported under "Other".
func SpendingSummaryOf(r *Record) SpendingSummary {
	spent := Spent(r)
	percent := Percent(spent, r.Budget)
	if percent > 100 {
		percent = 100
	}

	var cats []CategoryAmount
	index := map[string]int{}
	for _, t := range r.Transactions {
		if t.Type != Subtract {
			continue
		}
		name := t.Category
		if name == "" {
			name = "Other"
		}
		i, ok := index[name]
		if !ok {
			i = len(cats)
			index[name] = i
			cats = append(cats, CategoryAmount{Name: name})
		}
		cats[i].Amount = cats[i].Amount.Add(t.Amount)
	}

	return SpendingSummary{
		Budget:      r.Budget,
		Spent:       spent,
		PercentUsed: percent,
		ByCategory:  cats,
	}
}

// DashboardOf derives the main page overview.
func DashboardOf(r *Record) Dashboard {
	return Dashboard{
		Name:    r.Name,
		Balance: r.Balance,
		Savings: r.Savings,
		Spent:   Spent(r),
	}
}
