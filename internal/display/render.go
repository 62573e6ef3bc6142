package display

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/grocery"
	"github.com/hammamikhairi/mealcraft/internal/mealplan"
	"github.com/hammamikhairi/mealcraft/internal/shopping"
)

// RecipeMeta is the one-line summary under a recipe name.
func RecipeMeta(r domain.Recipe) string {
	var parts []string
	for _, v := range []string{r.Diet, r.Course, r.Region, r.FlavorProfile} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	if d := r.Duration(); d > 0 {
		parts = append(parts, fmt.Sprintf("⏱ %d min", d))
	}
	return strings.Join(parts, " · ")
}

// Recipes prints a numbered recipe list.
func (p *Printer) Recipes(recipes []domain.Recipe) {
	if len(recipes) == 0 {
		p.Heading("No recipes found")
		p.Hint("Try adjusting your filters or search terms")
		return
	}
	for i, r := range recipes {
		p.Println(accentStyle.Render(fmt.Sprintf("%3d. ", i+1)) + headingStyle.Render(r.Name))
		if meta := RecipeMeta(r); meta != "" {
			p.Hint("     " + meta)
		}
	}
}

// RecipeDetail prints a full recipe.
func (p *Printer) RecipeDetail(d *domain.RecipeDetail) {
	p.Title(d.Name)
	if meta := RecipeMeta(d.Recipe); meta != "" {
		p.Hint(meta)
	}
	if d.State != "" {
		p.Hint("From " + d.State)
	}

	if ing := d.IngredientList(); len(ing) > 0 {
		p.Println()
		p.Heading("Ingredients")
		for _, i := range ing {
			p.Line("• " + i)
		}
	}

	if len(d.Instructions) > 0 {
		p.Println()
		p.Heading("Instructions")
		for i, step := range d.Instructions {
			p.Line(fmt.Sprintf("%d. %s", i+1, step))
		}
	}

	n := d.Nutrition
	if n.Calories > 0 || n.Protein > 0 {
		p.Println()
		p.Heading("Nutrition")
		p.Line(fmt.Sprintf("%.0f kcal · protein %.0fg · carbs %.0fg · fat %.0fg", n.Calories, n.Protein, n.Carbs, n.Fat))
	}
	if d.EstimatedCost != "" {
		p.Line("Estimated cost: ₹" + strings.TrimPrefix(d.EstimatedCost, "₹"))
	}
	if d.Serving != "" {
		p.Hint(d.Serving)
	}
	if d.Tips != "" {
		p.Println()
		p.Chat("Tip: " + d.Tips)
	}
}

// Messages prints shopping assistant replies.
func (p *Printer) Messages(msgs []shopping.Message) {
	for _, m := range msgs {
		switch m.Kind {
		case shopping.KindList:
			for _, item := range m.Items {
				p.Line("• " + item)
			}
		case shopping.KindQuestion:
			p.Println(accentStyle.Render("  " + m.Text))
		case shopping.KindStores:
			for i, s := range m.Stores {
				p.Println(accentStyle.Render(fmt.Sprintf("  %d. ", i+1)) +
					headingStyle.Render(s.Icon+" "+s.Name) +
					secondaryStyle.Render(fmt.Sprintf("  %s delivery · %s", s.DeliveryTime, s.Offer)))
			}
		case shopping.KindSummary:
			if s := m.Summary; s != nil {
				p.Heading("  Order summary")
				p.Line("Store: " + s.Store.Icon + " " + s.Store.Name)
				p.Line(fmt.Sprintf("Items: %d ingredients", s.Items))
				p.Line("Delivery: " + s.Delivery)
				p.Line(fmt.Sprintf("Estimated total: ₹%d", s.Total))
			}
		case shopping.KindLink:
			p.Chat(m.Text)
			p.Link("", m.URL)
		case shopping.KindAlert:
			p.Urgent(m.Text)
		default:
			p.Chat(m.Text)
		}
	}
}

// Meals prints a numbered list of meals to shop for.
func (p *Printer) Meals(meals []domain.Meal) {
	for i, m := range meals {
		p.Println(accentStyle.Render(fmt.Sprintf("  %d. ", i+1)) + headingStyle.Render(m.Dish) +
			secondaryStyle.Render(fmt.Sprintf("  %s · %s", m.Type, m.Time)))
	}
}

// MealPlan prints a weekly plan day by day.
func (p *Printer) MealPlan(plan *domain.MealPlan) {
	title := "Meal plan"
	if plan.WeekOf != "" {
		title += " · week of " + plan.WeekOf
	}
	if plan.ID > 0 {
		title += fmt.Sprintf(" (#%d)", plan.ID)
	}
	p.Title(title)

	grid := mealplan.NewGrid(plan)
	for _, day := range grid.Days() {
		p.Println()
		p.Heading(day)
		for _, m := range grid.Meals(day) {
			line := fmt.Sprintf("%-10s %s", slotName(m.Type), m.Dish)
			var extra []string
			if m.Calories != "" {
				extra = append(extra, m.Calories+" kcal")
			}
			if m.Cost != "" {
				extra = append(extra, m.Cost)
			}
			if m.Time != "" {
				extra = append(extra, m.Time)
			}
			if len(extra) > 0 {
				line += secondaryStyle.Render("  " + strings.Join(extra, " · "))
			}
			p.Line(line)
		}
	}

	s := plan.Summary
	if s.TotalCost != "" || s.BudgetStatus != "" {
		p.Println()
		p.Heading("Summary")
		if s.TotalCost != "" {
			p.Line("Total cost: " + s.TotalCost)
		}
		if s.AvgCostPerMeal != "" {
			p.Line("Per meal: " + s.AvgCostPerMeal)
		}
		if s.WeeklyBudget != "" {
			p.Line("Budget: " + s.WeeklyBudget)
		}
		if s.BudgetStatus != "" {
			p.Line("Status: " + s.BudgetStatus)
		}
		if s.CalorieBalanceAccuracy != "" {
			p.Line("Calorie balance: " + s.CalorieBalanceAccuracy)
		}
	}

	if items := plan.ShoppingItems(); len(items) > 0 {
		p.Println()
		p.Heading("Shopping list")
		p.Line(strings.Join(items, ", "))
	}
}

// PlanHistory prints past plans, newest first.
func (p *Printer) PlanHistory(records []domain.PlanRecord) {
	if len(records) == 0 {
		p.Hint("No meal plans yet")
		return
	}
	for _, r := range records {
		line := fmt.Sprintf("#%d  %s → %s", r.ID, r.StartDate, r.EndDate)
		if r.TotalCost > 0 {
			line += fmt.Sprintf("  ₹%.0f", r.TotalCost)
		}
		if r.Status != "" {
			line += "  " + r.Status
		}
		p.Line(line)
	}
}

// Prices prints a price listing grouped by store.
func (p *Printer) Prices(l *grocery.Listing) {
	for _, store := range l.Stores {
		p.Heading(store)
		for _, price := range l.ByStore[store] {
			stock := ""
			if !price.InStock {
				stock = urgentStyle.Render("  out of stock")
			}
			unit := ""
			if price.Unit != "" {
				unit = "/" + price.Unit
			}
			p.Line(fmt.Sprintf("%-24s ₹%.2f%s", price.ItemName, price.Price, unit) + stock)
		}
	}
	p.Println()
	p.Hint(fmt.Sprintf("%d items · %d stores · %d in stock", l.Summary.TotalItems, l.Summary.Stores, l.Summary.InStock))
}

// Comparisons prints the best price for each compared item.
func (p *Printer) Comparisons(results []grocery.Comparison) {
	for _, r := range results {
		if !r.Found {
			p.Println(primaryStyle.Render(fmt.Sprintf("  %-24s ", r.Item)) + secondaryStyle.Render("not found"))
			continue
		}
		p.Println(primaryStyle.Render(fmt.Sprintf("  %-24s ", r.Item)) +
			accentStyle.Render(fmt.Sprintf("₹%.2f", r.Best.Price)) +
			secondaryStyle.Render(fmt.Sprintf(" at %s (%d stores)", r.Best.StoreName, len(r.Offers))))
	}
	p.Println()
	p.Line(fmt.Sprintf("Best total: ₹%.2f", grocery.Total(results)))
}

func slotName(t domain.MealType) string {
	s := string(t)
	if s == "" {
		return "Meal"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
