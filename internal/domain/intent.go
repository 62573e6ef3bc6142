package domain

// IntentType classifies what the user wants to do in the shopping dialogue.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentListMeals
	IntentSelectMeal
	IntentYes
	IntentNo
	IntentSelectStore
	IntentConfirm
	IntentCancel
	IntentStatus
	IntentRestart
	IntentQuit
	IntentHelp
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentListMeals:
		return "list_meals"
	case IntentSelectMeal:
		return "select_meal"
	case IntentYes:
		return "yes"
	case IntentNo:
		return "no"
	case IntentSelectStore:
		return "select_store"
	case IntentConfirm:
		return "confirm"
	case IntentCancel:
		return "cancel"
	case IntentStatus:
		return "status"
	case IntentRestart:
		return "restart"
	case IntentQuit:
		return "quit"
	case IntentHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Intent represents a parsed user action.
type Intent struct {
	Type    IntentType
	Payload string // optional context, e.g. meal number or store id
}
