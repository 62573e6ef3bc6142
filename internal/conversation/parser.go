// Package conversation turns typed replies into shopping dialogue intents
// and prints assistant notifications.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches replies to intents using keywords. The dialogue
// state decides what ambiguous replies mean: "2" picks a store while the
// store list is showing and a meal otherwise, "yes" confirms an order at
// the summary step.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(yes|y|yeah|yep|sure|ok|okay|proceed|go ahead|buy( them| it)?)!?$`), domain.IntentYes},
		{regexp.MustCompile(`(?i)^(no|n|nope|not now|later|maybe later)!?$`), domain.IntentNo},
		{regexp.MustCompile(`(?i)^(confirm|place( the)? order|order( now)?|checkout)!?$`), domain.IntentConfirm},
		{regexp.MustCompile(`(?i)^(cancel|abort|never ?mind)$`), domain.IntentCancel},
		{regexp.MustCompile(`(?i)^(status|where|list status|progress)$`), domain.IntentStatus},
		{regexp.MustCompile(`(?i)^(restart|reset|new|start over)$`), domain.IntentRestart},
		{regexp.MustCompile(`(?i)^(quit|exit|bye|q)$`), domain.IntentQuit},
		{regexp.MustCompile(`(?i)^(help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(list|meals|menu|show|browse)$`), domain.IntentListMeals},
	}
	return p
}

// Parse converts a reply into an intent for the given dialogue state.
func (p *KeywordParser) Parse(ctx context.Context, input string, state domain.ShopState) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing %q in state %s", trimmed, state)

	if len(trimmed) <= 2 && isDigits(trimmed) {
		return &domain.Intent{Type: p.selectIntent(state), Payload: trimmed}, nil
	}

	for _, rule := range p.patterns {
		if !rule.regex.MatchString(trimmed) {
			continue
		}
		intent := p.contextual(rule.intent, state)
		p.log.Debug("matched intent: %s", intent)
		return &domain.Intent{Type: intent}, nil
	}

	lower := strings.ToLower(trimmed)
	for _, prefix := range []string{"select ", "pick ", "choose ", "shop for "} {
		if strings.HasPrefix(lower, prefix) {
			payload := strings.TrimSpace(trimmed[len(prefix):])
			return &domain.Intent{Type: p.selectIntent(state), Payload: payload}, nil
		}
	}

	// Free text while the store list is showing is a store name.
	if state == domain.ShopStoreSelection {
		return &domain.Intent{Type: domain.IntentSelectStore, Payload: trimmed}, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

func (p *KeywordParser) selectIntent(state domain.ShopState) domain.IntentType {
	if state == domain.ShopStoreSelection {
		return domain.IntentSelectStore
	}
	return domain.IntentSelectMeal
}

// contextual reinterprets yes and no at the order summary.
func (p *KeywordParser) contextual(intent domain.IntentType, state domain.ShopState) domain.IntentType {
	switch {
	case intent == domain.IntentYes && state == domain.ShopOrderConfirmation:
		return domain.IntentConfirm
	case intent == domain.IntentNo && (state == domain.ShopOrderConfirmation || state == domain.ShopStoreSelection):
		return domain.IntentCancel
	}
	return intent
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
