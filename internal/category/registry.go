// Package category holds the static notification channel and group
// definitions the mobile app registers on first launch. The server embeds the
// same table so every push carries the channel id and delivery knobs the
// device-side bridge expects.
package category

import "github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"

// Notification group identifiers.
const (
	GroupHousehold = "household"
	GroupPersonal  = "personal"
)

// Definition mirrors a platform notification channel: a stable id, its group,
// a human-readable name, and the delivery knobs applied on the device.
type Definition struct {
	ChannelID   string            `json:"channel_id"`
	GroupID     string            `json:"group_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Importance  domain.Importance `json:"importance"`
	Sound       string            `json:"sound"`
	Vibrate     bool              `json:"vibrate"`
}

var definitions = map[domain.Category]Definition{
	domain.CategoryTask: {
		ChannelID:   "task_reminders",
		GroupID:     GroupPersonal,
		Name:        "Task Reminders",
		Description: "Due-date reminders for assigned chores",
		Importance:  domain.ImportanceHigh,
		Sound:       "default",
		Vibrate:     true,
	},
	domain.CategoryShopping: {
		ChannelID:   "shopping_updates",
		GroupID:     GroupHousehold,
		Name:        "Shopping List",
		Description: "Changes to the shared shopping list",
		Importance:  domain.ImportanceDefault,
		Sound:       "default",
		Vibrate:     true,
	},
	domain.CategoryChat: {
		ChannelID:   "chat_messages",
		GroupID:     GroupHousehold,
		Name:        "Chat Messages",
		Description: "New messages in the household chat",
		Importance:  domain.ImportanceHigh,
		Sound:       "message",
		Vibrate:     true,
	},
	domain.CategoryExpense: {
		ChannelID:   "expense_updates",
		GroupID:     GroupHousehold,
		Name:        "Expenses",
		Description: "Expenses added to the household ledger",
		Importance:  domain.ImportanceDefault,
		Sound:       "default",
		Vibrate:     false,
	},
	domain.CategoryReport: {
		ChannelID:   "weekly_reports",
		GroupID:     GroupPersonal,
		Name:        "Weekly Reports",
		Description: "Weekly chore and points summary",
		Importance:  domain.ImportanceLow,
		Sound:       "",
		Vibrate:     false,
	},
}

// order gives All() a stable, presentation-friendly ordering.
var order = []domain.Category{
	domain.CategoryTask,
	domain.CategoryShopping,
	domain.CategoryChat,
	domain.CategoryExpense,
	domain.CategoryReport,
}

// Lookup returns the channel definition for a category.
func Lookup(c domain.Category) (Definition, bool) {
	d, ok := definitions[c]
	return d, ok
}

// All returns every channel definition in stable order.
func All() []Definition {
	out := make([]Definition, 0, len(order))
	for _, c := range order {
		out = append(out, definitions[c])
	}
	return out
}
