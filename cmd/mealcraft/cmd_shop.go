package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/mealcraft/internal/conversation"
	"github.com/hammamikhairi/mealcraft/internal/display"
	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
	"github.com/hammamikhairi/mealcraft/internal/mealplan"
	"github.com/hammamikhairi/mealcraft/internal/recipe"
	"github.com/hammamikhairi/mealcraft/internal/shopping"
)

var shopFlags struct {
	demo bool
}

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Chat with the shopping assistant to order a meal's ingredients",
	RunE:  runShop,
}

func init() {
	f := shopCmd.Flags()
	f.BoolVar(&shopFlags.demo, "demo", false, "shop for the demo meals even when a plan exists")
}

func runShop(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	log := a.log.With("shop")

	asst, err := shopping.New(a.orders(), a.store, log)
	if err != nil {
		return err
	}

	pr := display.NewPrinter(cmd.OutOrStdout())
	sess := &shopSession{
		asst:     asst,
		parser:   conversation.NewKeywordParser(log),
		notifier: conversation.NewCLINotifier(log, func(format string, args ...interface{}) {
			pr.Println(fmt.Sprintf(format, args...))
		}),
		pr:       pr,
		meals:    shopMeals(ctx, a, log),
		log:      log,
	}

	pr.Println(display.RenderBanner(0))
	pr.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	pr.Println()
	sess.greet()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(sess.complete)

	histPath := filepath.Join(a.cfg.DataDir, "shop_history")
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		input, err := line.Prompt(display.Prompt("shop"))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				pr.Println()
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if sess.handle(ctx, input) {
			return nil
		}
	}
}

// shopMeals returns the meals offered for shopping: the dishes of this
// week's plan when there is one, otherwise the demo meals.
func shopMeals(ctx context.Context, a *app, log *logger.Logger) []domain.Meal {
	if !shopFlags.demo {
		planner := mealplan.New(a.plans(), a.store, log)
		if plan, err := planner.Current(ctx); err == nil {
			if meals := plannedMeals(plan); len(meals) > 0 {
				return meals
			}
		} else {
			log.Debug("no current plan for shopping: %v", err)
		}
	}
	return recipe.DemoMeals()
}

// plannedMeals lists the distinct plan meals that carry ingredients.
func plannedMeals(plan *domain.MealPlan) []domain.Meal {
	grid := mealplan.NewGrid(plan)
	seen := make(map[string]bool)
	var out []domain.Meal
	for _, day := range grid.Days() {
		for _, m := range grid.Meals(day) {
			if m.Dish == "" || m.Ingredients == "" || seen[m.Dish] {
				continue
			}
			seen[m.Dish] = true
			out = append(out, m)
		}
	}
	return out
}

// ── Session ──────────────────────────────────────────────────────

// shopSession routes typed replies to the shopping assistant.
type shopSession struct {
	asst     *shopping.Assistant
	parser   domain.IntentParser
	notifier domain.Notifier
	pr       *display.Printer
	meals    []domain.Meal
	log      *logger.Logger
}

func (s *shopSession) greet() {
	s.pr.Messages([]shopping.Message{shopping.Greeting()})
	s.pr.Meals(s.meals)
	s.pr.Println()
}

// handle processes one reply and reports whether the user asked to quit.
func (s *shopSession) handle(ctx context.Context, input string) bool {
	intent, err := s.parser.Parse(ctx, input, s.asst.State())
	if err != nil {
		s.log.Error("parsing input: %v", err)
		return false
	}
	s.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)

	var msgs []shopping.Message
	switch intent.Type {
	case domain.IntentHelp:
		s.help()
		return false
	case domain.IntentQuit:
		s.notifier.Notify(ctx, "Happy cooking! 👋")
		return true
	case domain.IntentListMeals:
		s.pr.Meals(s.meals)
		return false
	case domain.IntentStatus:
		s.status()
		return false
	case domain.IntentRestart:
		s.asst.Reset()
		s.greet()
		return false
	case domain.IntentSelectMeal:
		meal, ok := s.findMeal(intent.Payload)
		if !ok {
			s.notifier.Notify(ctx, fmt.Sprintf("I don't have a meal called %q. Type 'list' to see them.", intent.Payload))
			return false
		}
		msgs, err = s.asst.SelectMeal(ctx, meal)
	case domain.IntentYes:
		msgs, err = s.asst.Decide(ctx, true)
	case domain.IntentNo:
		msgs, err = s.asst.Decide(ctx, false)
	case domain.IntentSelectStore:
		msgs, err = s.asst.SelectStore(ctx, intent.Payload)
	case domain.IntentConfirm:
		msgs, err = s.asst.Confirm(ctx)
	case domain.IntentCancel:
		msgs, err = s.asst.Cancel(ctx)
	default:
		s.notifier.Notify(ctx, "Sorry, I didn't catch that. Type 'help' to see what I understand.")
		return false
	}

	switch {
	case errors.Is(err, domain.ErrUnknownStore):
		s.notifier.Notify(ctx, "I don't know that store. Pick a number from the list.")
	case errors.Is(err, domain.ErrInvalidTransition):
		s.notifier.Notify(ctx, s.nextStep())
	case errors.Is(err, domain.ErrEmptyIngredients):
		s.notifier.NotifyUrgent(ctx, "That meal has no ingredient list, so there is nothing to buy.")
	case err != nil:
		s.notifier.NotifyUrgent(ctx, err.Error())
	}
	s.pr.Messages(msgs)
	return false
}

// findMeal resolves a list number or a (partial) dish name.
func (s *shopSession) findMeal(ref string) (domain.Meal, bool) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(s.meals) {
			return s.meals[n-1], true
		}
		return domain.Meal{}, false
	}
	lower := strings.ToLower(ref)
	for _, m := range s.meals {
		if strings.EqualFold(m.Dish, ref) {
			return m, true
		}
	}
	for _, m := range s.meals {
		if lower != "" && strings.Contains(strings.ToLower(m.Dish), lower) {
			return m, true
		}
	}
	return domain.Meal{}, false
}

// nextStep tells the user what the dialogue expects now.
func (s *shopSession) nextStep() string {
	switch s.asst.State() {
	case domain.ShopAwaitingDecision:
		return "Should I buy the ingredients? Answer yes or no."
	case domain.ShopStoreSelection:
		return "Pick a store by number or name, or say cancel."
	case domain.ShopOrderConfirmation:
		return "Say confirm to place the order or cancel to stop."
	default:
		return "Pick a meal first: type its number or 'shop for <dish>'."
	}
}

func (s *shopSession) status() {
	state := s.asst.State()
	s.pr.Line(fmt.Sprintf("Session %s · %s", s.asst.SessionID(), state))
	if items := s.asst.Ingredients(); len(items) > 0 {
		s.pr.Line(fmt.Sprintf("Shopping list: %d items · est. ₹%d", len(items), shopping.EstimateTotal(items)))
	}
	if res, id := s.asst.Result(); res != nil {
		s.pr.Line(fmt.Sprintf("Order %s: %d added, %d need manual search", id, len(res.ItemsAdded), len(res.ItemsNotFound)))
	}
	if !state.Terminal() {
		s.pr.Hint(s.nextStep())
	}
}

func (s *shopSession) help() {
	s.pr.Heading("Commands")
	s.pr.Line("list               show the meals")
	s.pr.Line("<n> | shop for <dish>  pick a meal")
	s.pr.Line("yes / no           answer the assistant")
	s.pr.Line("<n> | <store>      pick a store")
	s.pr.Line("confirm / cancel   place or drop the order")
	s.pr.Line("status             where are we")
	s.pr.Line("restart            start over")
	s.pr.Line("quit               leave")
}

var shopWords = []string{"list", "yes", "no", "confirm", "cancel", "status", "restart", "help", "quit", "shop for "}

func (s *shopSession) complete(line string) []string {
	lower := strings.ToLower(line)
	var out []string
	if strings.HasPrefix(lower, "shop for ") {
		for _, m := range s.meals {
			if c := "shop for " + m.Dish; strings.HasPrefix(strings.ToLower(c), lower) {
				out = append(out, c)
			}
		}
		return out
	}
	if s.asst.State() == domain.ShopStoreSelection {
		for _, st := range s.asst.Catalog().Stores() {
			if strings.HasPrefix(strings.ToLower(st.Name), lower) {
				out = append(out, st.Name)
			}
		}
	}
	for _, w := range shopWords {
		if strings.HasPrefix(w, lower) {
			out = append(out, w)
		}
	}
	return out
}
