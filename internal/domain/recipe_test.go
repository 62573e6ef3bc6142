package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecipeDuration(t *testing.T) {
	tests := []struct {
		name   string
		recipe Recipe
		want   int
	}{
		{"total time wins", Recipe{TotalTime: 45, CookTime: 30}, 45},
		{"cook time fallback", Recipe{CookTime: 30}, 30},
		{"neither", Recipe{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.recipe.Duration(); got != tt.want {
				t.Fatalf("Duration() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecipeUnmarshalLenient(t *testing.T) {
	body := `[
		{"name":"Dal Tadka","diet":"vegetarian","course":"main","region":"North","flavor_profile":"spicy","ingredients":"Toor dal, onions","total_time":45},
		{"name":"Poha","diet":"vegetarian","region":-1,"flavor_profile":null,"cook_time":"20","prep_time":"n/a"},
		{"name":42,"total_time":true},
		"garbage",
		{"name":"Kheer","cook_time":12.6,"total_time":-1}
	]`

	var got []Recipe
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []Recipe{
		{Name: "Dal Tadka", Diet: "vegetarian", Course: "main", Region: "North", FlavorProfile: "spicy", Ingredients: "Toor dal, onions", TotalTime: 45},
		{Name: "Poha", Diet: "vegetarian", CookTime: 20},
		{Name: "42"},
		{},
		{Name: "Kheer", CookTime: 13},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestRecipeDetailUnmarshal(t *testing.T) {
	body := `{
		"name":"Masala Dosa","diet":"vegetarian","total_time":"30",
		"instructions":"Soak rice\n\nGrind batter\n",
		"tips":"Rest the batter overnight",
		"nutrition":{"calories":"350","protein":8,"carbs":55,"fat":10},
		"estimated_cost":45
	}`

	var got RecipeDetail
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got.Name != "Masala Dosa" || got.Duration() != 30 {
		t.Fatalf("unexpected base recipe: %+v", got.Recipe)
	}
	if diff := cmp.Diff([]string{"Soak rice", "Grind batter"}, got.Instructions); diff != "" {
		t.Fatalf("instructions mismatch (-want +got):\n%s", diff)
	}
	if got.Nutrition.Calories != 350 || got.Nutrition.Protein != 8 {
		t.Fatalf("unexpected nutrition: %+v", got.Nutrition)
	}
	if got.EstimatedCost != "45" {
		t.Fatalf("expected cost 45, got %q", got.EstimatedCost)
	}
}

func TestSplitIngredients(t *testing.T) {
	got := SplitIngredients(" Toor dal, onions ,, tomatoes,")
	if diff := cmp.Diff([]string{"Toor dal", "onions", "tomatoes"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMealPlanShoppingItems(t *testing.T) {
	plan := MealPlan{ShoppingList: map[string]int{"onion": 5, "ghee": 2, "cumin": 5, "rice": 1}}
	if diff := cmp.Diff([]string{"cumin", "onion", "ghee", "rice"}, plan.ShoppingItems()); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterStateActive(t *testing.T) {
	if n := (FilterState{}).Active(); n != 0 {
		t.Fatalf("expected 0 active, got %d", n)
	}
	if n := (FilterState{Query: "dal", Region: "North", MaxTime: 30}).Active(); n != 3 {
		t.Fatalf("expected 3 active, got %d", n)
	}
}
