package domain

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    ContentStatus
		to      ContentStatus
		allowed bool
	}{
		{"draft to review", StatusDraft, StatusReadyForReview, true},
		{"draft to archived", StatusDraft, StatusArchived, true},
		{"draft to published", StatusDraft, StatusPublished, false},
		{"draft to validated", StatusDraft, StatusValidated, false},
		{"review to validated", StatusReadyForReview, StatusValidated, true},
		{"review to draft", StatusReadyForReview, StatusDraft, true},
		{"review to archived", StatusReadyForReview, StatusArchived, true},
		{"review to published", StatusReadyForReview, StatusPublished, false},
		{"validated to published", StatusValidated, StatusPublished, true},
		{"validated to draft", StatusValidated, StatusDraft, true},
		{"validated to archived", StatusValidated, StatusArchived, true},
		{"validated to review", StatusValidated, StatusReadyForReview, false},
		{"published to draft", StatusPublished, StatusDraft, true},
		{"published to archived", StatusPublished, StatusArchived, true},
		{"published to validated", StatusPublished, StatusValidated, false},
		{"archived to draft", StatusArchived, StatusDraft, true},
		{"archived to published", StatusArchived, StatusPublished, false},
		{"archived to review", StatusArchived, StatusReadyForReview, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.allowed {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestTransitionsFromNeverIncludesCurrent(t *testing.T) {
	for _, status := range AllStatuses() {
		for _, target := range TransitionsFrom(status) {
			if target == status {
				t.Errorf("TransitionsFrom(%s) includes the current status", status)
			}
		}
	}
}

func TestTransitionsFromReturnsCopy(t *testing.T) {
	first := TransitionsFrom(StatusDraft)
	first[0] = StatusPublished

	second := TransitionsFrom(StatusDraft)
	if second[0] == StatusPublished {
		t.Error("mutating the returned slice leaked into the transition table")
	}
}

func TestStatusValid(t *testing.T) {
	for _, status := range AllStatuses() {
		if !status.Valid() {
			t.Errorf("%s should be valid", status)
		}
	}
	if ContentStatus("deleted").Valid() {
		t.Error("unknown status should not be valid")
	}
	if ContentStatus("").Valid() {
		t.Error("empty status should not be valid")
	}
}
