package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
)

func TestCreateReminderRequest_Validate(t *testing.T) {
	valid := domain.CreateReminderRequest{
		Category:   domain.CategoryTask,
		MemberID:   "member-1",
		Title:      "Take out the trash",
		Body:       "Due tonight",
		Importance: domain.ImportanceDefault,
	}

	t.Run("valid request passes", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("invalid category", func(t *testing.T) {
		r := valid
		r.Category = "laundry"
		if err := r.Validate(); err != domain.ErrInvalidCategory {
			t.Fatalf("expected ErrInvalidCategory, got %v", err)
		}
	})

	t.Run("invalid importance", func(t *testing.T) {
		r := valid
		r.Importance = "urgent"
		if err := r.Validate(); err != domain.ErrInvalidImportance {
			t.Fatalf("expected ErrInvalidImportance, got %v", err)
		}
	})

	t.Run("empty member", func(t *testing.T) {
		r := valid
		r.MemberID = ""
		if err := r.Validate(); err != domain.ErrInvalidMember {
			t.Fatalf("expected ErrInvalidMember, got %v", err)
		}
	})

	t.Run("empty title", func(t *testing.T) {
		r := valid
		r.Title = ""
		if err := r.Validate(); err != domain.ErrInvalidTitle {
			t.Fatalf("expected ErrInvalidTitle, got %v", err)
		}
	})

	t.Run("body too long", func(t *testing.T) {
		r := valid
		r.Body = strings.Repeat("x", 2049)
		if err := r.Validate(); err != domain.ErrInvalidBody {
			t.Fatalf("expected ErrInvalidBody, got %v", err)
		}
	})

	t.Run("body at max length passes", func(t *testing.T) {
		r := valid
		r.Body = strings.Repeat("x", 2048)
		if err := r.Validate(); err != nil {
			t.Fatalf("expected no error at max length, got %v", err)
		}
	})

	t.Run("two scheduling forms rejected", func(t *testing.T) {
		r := valid
		now := time.Now()
		at := "09:00"
		r.ScheduledAt = &now
		r.At = &at
		if err := r.Validate(); err != domain.ErrAmbiguousSchedule {
			t.Fatalf("expected ErrAmbiguousSchedule, got %v", err)
		}
	})

	t.Run("lead without due rejected", func(t *testing.T) {
		r := valid
		lead := 30
		r.LeadMinutes = &lead
		if err := r.Validate(); err != domain.ErrLeadWithoutDue {
			t.Fatalf("expected ErrLeadWithoutDue, got %v", err)
		}
	})

	t.Run("negative lead rejected", func(t *testing.T) {
		r := valid
		due := time.Now().Add(time.Hour)
		lead := -5
		r.DueAt = &due
		r.LeadMinutes = &lead
		if err := r.Validate(); err != domain.ErrNegativeLead {
			t.Fatalf("expected ErrNegativeLead, got %v", err)
		}
	})

	t.Run("all valid categories accepted", func(t *testing.T) {
		for _, c := range []domain.Category{
			domain.CategoryTask, domain.CategoryShopping, domain.CategoryChat,
			domain.CategoryExpense, domain.CategoryReport,
		} {
			r := valid
			r.Category = c
			if err := r.Validate(); err != nil {
				t.Fatalf("category %q: expected no error, got %v", c, err)
			}
		}
	})
}

func TestCreateBroadcastRequest_Validate(t *testing.T) {
	valid := domain.CreateBroadcastRequest{
		MemberIDs:  []string{"a", "b"},
		Category:   domain.CategoryShopping,
		Title:      "Shopping list updated",
		Importance: domain.ImportanceDefault,
	}

	t.Run("valid request passes", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty member list", func(t *testing.T) {
		r := valid
		r.MemberIDs = nil
		if err := r.Validate(); err != domain.ErrBroadcastEmpty {
			t.Fatalf("expected ErrBroadcastEmpty, got %v", err)
		}
	})

	t.Run("too many members", func(t *testing.T) {
		r := valid
		r.MemberIDs = make([]string, domain.MaxBroadcastMembers+1)
		for i := range r.MemberIDs {
			r.MemberIDs[i] = "m"
		}
		if err := r.Validate(); err != domain.ErrBroadcastTooLarge {
			t.Fatalf("expected ErrBroadcastTooLarge, got %v", err)
		}
	})

	t.Run("blank member id", func(t *testing.T) {
		r := valid
		r.MemberIDs = []string{"a", ""}
		if err := r.Validate(); err != domain.ErrInvalidMember {
			t.Fatalf("expected ErrInvalidMember, got %v", err)
		}
	})
}
