package domain_test

import (
	"testing"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
)

func TestParseTapPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    domain.Route
	}{
		{
			name:    "task with id",
			payload: domain.TaskPayload("42"),
			want:    domain.Route{Category: domain.CategoryTask, TargetID: "42", Screen: domain.ScreenTasks},
		},
		{
			name:    "task without id",
			payload: domain.TaskPayload(""),
			want:    domain.Route{Category: domain.CategoryTask, Screen: domain.ScreenTasks},
		},
		{
			name:    "chat message",
			payload: domain.ChatPayload("msg-7"),
			want:    domain.Route{Category: domain.CategoryChat, TargetID: "msg-7", Screen: domain.ScreenChat},
		},
		{
			name:    "shopping list",
			payload: domain.PayloadShoppingList,
			want:    domain.Route{Category: domain.CategoryShopping, Screen: domain.ScreenShopping},
		},
		{
			name:    "expense added",
			payload: domain.PayloadExpenseAdded,
			want:    domain.Route{Category: domain.CategoryExpense, Screen: domain.ScreenExpenses},
		},
		{
			name:    "weekly report",
			payload: domain.PayloadWeeklyReport,
			want:    domain.Route{Category: domain.CategoryReport, Screen: domain.ScreenReports},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.ParseTapPayload(tc.payload)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseTapPayload_Unknown(t *testing.T) {
	got, err := domain.ParseTapPayload("mystery_payload")
	if err != domain.ErrUnknownPayload {
		t.Fatalf("expected ErrUnknownPayload, got %v", err)
	}
	if got.Screen != domain.ScreenHome {
		t.Fatalf("expected home route fallback, got %+v", got)
	}
}

func TestPayloadFor_RoundTrip(t *testing.T) {
	for _, c := range []domain.Category{
		domain.CategoryTask, domain.CategoryShopping, domain.CategoryChat,
		domain.CategoryExpense, domain.CategoryReport,
	} {
		p := domain.PayloadFor(c, "id-1")
		route, err := domain.ParseTapPayload(p)
		if err != nil {
			t.Fatalf("category %q: unexpected error: %v", c, err)
		}
		if route.Category != c {
			t.Fatalf("category %q: round-tripped to %q", c, route.Category)
		}
	}
}
