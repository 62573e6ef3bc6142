package conversation

import (
	"context"
	"testing"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
)

func TestKeywordParser(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	parser := NewKeywordParser(log)
	ctx := context.Background()

	tests := []struct {
		input       string
		state       domain.ShopState
		wantType    domain.IntentType
		wantPayload string
	}{
		// Meal selection
		{"1", domain.ShopIdle, domain.IntentSelectMeal, "1"},
		{"3", domain.ShopPlaced, domain.IntentSelectMeal, "3"},
		{"pick Dal Tadka", domain.ShopIdle, domain.IntentSelectMeal, "Dal Tadka"},
		{"shop for palak paneer", domain.ShopDeclined, domain.IntentSelectMeal, "palak paneer"},

		// Proceed question
		{"yes", domain.ShopAwaitingDecision, domain.IntentYes, ""},
		{"Sure!", domain.ShopAwaitingDecision, domain.IntentYes, ""},
		{"buy them", domain.ShopAwaitingDecision, domain.IntentYes, ""},
		{"no", domain.ShopAwaitingDecision, domain.IntentNo, ""},
		{"maybe later", domain.ShopAwaitingDecision, domain.IntentNo, ""},

		// Store selection
		{"2", domain.ShopStoreSelection, domain.IntentSelectStore, "2"},
		{"zepto", domain.ShopStoreSelection, domain.IntentSelectStore, "zepto"},
		{"choose Swiggy Instamart", domain.ShopStoreSelection, domain.IntentSelectStore, "Swiggy Instamart"},
		{"no", domain.ShopStoreSelection, domain.IntentCancel, ""},

		// Order summary
		{"yes", domain.ShopOrderConfirmation, domain.IntentConfirm, ""},
		{"place order", domain.ShopOrderConfirmation, domain.IntentConfirm, ""},
		{"nope", domain.ShopOrderConfirmation, domain.IntentCancel, ""},
		{"cancel", domain.ShopOrderConfirmation, domain.IntentCancel, ""},

		// Anywhere
		{"status", domain.ShopIdle, domain.IntentStatus, ""},
		{"start over", domain.ShopAwaitingDecision, domain.IntentRestart, ""},
		{"menu", domain.ShopIdle, domain.IntentListMeals, ""},
		{"quit", domain.ShopStoreSelection, domain.IntentQuit, ""},
		{"exit", domain.ShopIdle, domain.IntentQuit, ""},
		{"?", domain.ShopIdle, domain.IntentHelp, ""},

		// Unknown
		{"flambé the cat", domain.ShopIdle, domain.IntentUnknown, "flambé the cat"},
		{"", domain.ShopIdle, domain.IntentUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.state.String()+"/"+tt.input, func(t *testing.T) {
			intent, err := parser.Parse(ctx, tt.input, tt.state)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if intent.Type != tt.wantType {
				t.Errorf("Parse(%q, %s) type = %s, want %s", tt.input, tt.state, intent.Type, tt.wantType)
			}
			if intent.Payload != tt.wantPayload {
				t.Errorf("Parse(%q, %s) payload = %q, want %q", tt.input, tt.state, intent.Payload, tt.wantPayload)
			}
		})
	}
}

func TestCLINotifier(t *testing.T) {
	var lines []string
	n := NewCLINotifier(logger.New(logger.LevelOff, nil), func(format string, a ...interface{}) {
		lines = append(lines, format)
	})

	n.Notify(context.Background(), "List saved")
	n.NotifyUrgent(context.Background(), "Store unreachable")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
}
