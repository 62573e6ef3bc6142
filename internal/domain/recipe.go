// Package domain defines the core types and interfaces for the meal planner client.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Recipe is a single dish as returned by the recipe search endpoint.
// Name is the identity used for selection, sharing and favorites.
type Recipe struct {
	Name          string `json:"name" yaml:"name"`
	Diet          string `json:"diet" yaml:"diet"`
	Course        string `json:"course,omitempty" yaml:"course"`
	Region        string `json:"region,omitempty" yaml:"region"`
	State         string `json:"state,omitempty" yaml:"state"`
	FlavorProfile string `json:"flavor_profile,omitempty" yaml:"flavor_profile"`
	Ingredients   string `json:"ingredients" yaml:"ingredients"`
	PrepTime      int    `json:"prep_time,omitempty" yaml:"prep_time"`
	CookTime      int    `json:"cook_time,omitempty" yaml:"cook_time"`
	TotalTime     int    `json:"total_time,omitempty" yaml:"total_time"`
	ImageURL      string `json:"image_url,omitempty" yaml:"image_url"`
}

// Duration returns the effective duration in minutes: total time when
// present, otherwise cook time, otherwise zero.
func (r Recipe) Duration() int {
	if r.TotalTime > 0 {
		return r.TotalTime
	}
	if r.CookTime > 0 {
		return r.CookTime
	}
	return 0
}

// IngredientList splits the free-text ingredient field on commas.
// Blank entries are dropped.
func (r Recipe) IngredientList() []string {
	return SplitIngredients(r.Ingredients)
}

// SplitIngredients splits a comma-separated ingredient string into trimmed,
// non-empty items.
func SplitIngredients(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// UnmarshalJSON decodes a recipe leniently. The backend builds records from a
// CSV dataset, so fields may be null, numbers may arrive as strings, and
// missing values are encoded as -1. A bad field never fails the record.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an object at all: keep the zero record.
		*r = Recipe{}
		return nil
	}
	*r = Recipe{
		Name:          text(raw["name"]),
		Diet:          text(raw["diet"]),
		Course:        text(raw["course"]),
		Region:        text(raw["region"]),
		State:         text(raw["state"]),
		FlavorProfile: text(raw["flavor_profile"]),
		Ingredients:   text(raw["ingredients"]),
		PrepTime:      minutes(raw["prep_time"]),
		CookTime:      minutes(raw["cook_time"]),
		TotalTime:     minutes(raw["total_time"]),
		ImageURL:      text(raw["image_url"]),
	}
	return nil
}

// text converts a decoded JSON value to a string. Null and the dataset's
// "-1" placeholder become empty.
func text(v any) string {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "-1" || strings.EqualFold(s, "nan") {
			return ""
		}
		return s
	case float64:
		if t == -1 || math.IsNaN(t) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// minutes converts a decoded JSON value to a non-negative whole number of
// minutes. Anything unparseable becomes zero.
func minutes(v any) int {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	return int(math.Round(f))
}

// Nutrition holds per-serving estimates returned with recipe details.
type Nutrition struct {
	Calories float64 `json:"calories" yaml:"calories"`
	Protein  float64 `json:"protein" yaml:"protein"`
	Carbs    float64 `json:"carbs" yaml:"carbs"`
	Fat      float64 `json:"fat" yaml:"fat"`
	Fiber    float64 `json:"fiber,omitempty" yaml:"fiber"`
}

// RecipeDetail is a recipe enriched with preparation guidance.
type RecipeDetail struct {
	Recipe        `yaml:",inline"`
	Instructions  []string  `json:"instructions" yaml:"instructions"`
	Tips          string    `json:"tips,omitempty" yaml:"tips"`
	Serving       string    `json:"serving,omitempty" yaml:"serving"`
	Nutrition     Nutrition `json:"nutrition" yaml:"nutrition"`
	EstimatedCost string    `json:"estimated_cost,omitempty" yaml:"estimated_cost"`
}

// UnmarshalJSON decodes the embedded recipe leniently and the detail fields
// strictly where their shape is fixed.
func (d *RecipeDetail) UnmarshalJSON(data []byte) error {
	var base Recipe
	if err := base.UnmarshalJSON(data); err != nil {
		return err
	}

	var extra struct {
		Instructions  json.RawMessage `json:"instructions"`
		Tips          any             `json:"tips"`
		Serving       any             `json:"serving"`
		Nutrition     map[string]any  `json:"nutrition"`
		EstimatedCost any             `json:"estimated_cost"`
	}
	_ = json.Unmarshal(data, &extra)

	*d = RecipeDetail{
		Recipe:        base,
		Instructions:  instructionList(extra.Instructions),
		Tips:          text(extra.Tips),
		Serving:       text(extra.Serving),
		EstimatedCost: text(extra.EstimatedCost),
		Nutrition: Nutrition{
			Calories: number(extra.Nutrition["calories"]),
			Protein:  number(extra.Nutrition["protein"]),
			Carbs:    number(extra.Nutrition["carbs"]),
			Fat:      number(extra.Nutrition["fat"]),
			Fiber:    number(extra.Nutrition["fiber"]),
		},
	}
	return nil
}

// instructionList accepts either a list of steps or a single newline
// separated string.
func instructionList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var steps []string
	if err := json.Unmarshal(raw, &steps); err == nil {
		return steps
	}
	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil
	}
	var out []string
	for _, line := range strings.Split(single, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func number(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err == nil {
			return f
		}
	}
	return 0
}
