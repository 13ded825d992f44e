package domain

import "strings"

// Tap payloads are the opaque strings attached to a delivered notification.
// The mobile client echoes the payload back when the user taps, and the app
// dispatches on the prefix to decide which screen to open.
const (
	PayloadShoppingList = "shopping_list"
	PayloadExpenseAdded = "expense_added"
	PayloadWeeklyReport = "weekly_report"

	taskPayloadPrefix = "task_"
	chatPayloadPrefix = "chat_message_"
)

// Screen is the destination the client navigates to after a tap.
type Screen string

const (
	ScreenTasks    Screen = "tasks"
	ScreenShopping Screen = "shopping"
	ScreenChat     Screen = "chat"
	ScreenExpenses Screen = "expenses"
	ScreenReports  Screen = "reports"
	ScreenHome     Screen = "home"
)

// Route is the resolved destination for a tapped notification.
type Route struct {
	Category Category `json:"category"`
	TargetID string   `json:"target_id,omitempty"`
	Screen   Screen   `json:"screen"`
}

// TaskPayload builds the tap payload for a task reminder.
func TaskPayload(taskID string) string { return taskPayloadPrefix + taskID }

// ChatPayload builds the tap payload for a chat-message notification.
func ChatPayload(messageID string) string { return chatPayloadPrefix + messageID }

// PayloadFor builds the tap payload for a category. targetID is only
// meaningful for task and chat reminders and is ignored otherwise.
func PayloadFor(c Category, targetID string) string {
	switch c {
	case CategoryTask:
		return TaskPayload(targetID)
	case CategoryChat:
		return ChatPayload(targetID)
	case CategoryShopping:
		return PayloadShoppingList
	case CategoryExpense:
		return PayloadExpenseAdded
	case CategoryReport:
		return PayloadWeeklyReport
	}
	return ""
}

// ParseTapPayload dispatches a tap payload on its prefix.
//
// Unknown payloads return a home route together with ErrUnknownPayload so the
// client always has somewhere to navigate, even for payloads produced by a
// newer app version.
func ParseTapPayload(p string) (Route, error) {
	switch {
	case strings.HasPrefix(p, chatPayloadPrefix):
		return Route{
			Category: CategoryChat,
			TargetID: strings.TrimPrefix(p, chatPayloadPrefix),
			Screen:   ScreenChat,
		}, nil
	case strings.HasPrefix(p, taskPayloadPrefix):
		return Route{
			Category: CategoryTask,
			TargetID: strings.TrimPrefix(p, taskPayloadPrefix),
			Screen:   ScreenTasks,
		}, nil
	case p == PayloadShoppingList:
		return Route{Category: CategoryShopping, Screen: ScreenShopping}, nil
	case p == PayloadExpenseAdded:
		return Route{Category: CategoryExpense, Screen: ScreenExpenses}, nil
	case p == PayloadWeeklyReport:
		return Route{Category: CategoryReport, Screen: ScreenReports}, nil
	}
	return Route{Screen: ScreenHome}, ErrUnknownPayload
}
