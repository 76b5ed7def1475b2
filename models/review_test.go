package models

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestAverageScore(t *testing.T) {
	r := Review{
		Originality:     intPtr(4),
		ScientificValue: intPtr(5),
		Methodology:     intPtr(3),
	}
	avg, ok := r.AverageScore()
	if !ok {
		t.Fatal("expected an average")
	}
	if avg != 4.0 {
		t.Errorf("AverageScore() = %v, want 4.0", avg)
	}
}

func TestAverageScoreNoScores(t *testing.T) {
	r := Review{}
	if _, ok := r.AverageScore(); ok {
		t.Error("expected no average for an empty review")
	}
}

func TestAssignmentIsOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name string
		a    ReviewAssignment
		want bool
	}{
		{"pending past due", ReviewAssignment{Status: AssignmentPending, ReviewDue: &past}, true},
		{"accepted past due", ReviewAssignment{Status: AssignmentAccepted, ReviewDue: &past}, true},
		{"pending before due", ReviewAssignment{Status: AssignmentPending, ReviewDue: &future}, false},
		{"completed past due", ReviewAssignment{Status: AssignmentCompleted, ReviewDue: &past}, false},
		{"declined past due", ReviewAssignment{Status: AssignmentDeclined, ReviewDue: &past}, false},
		{"no deadline", ReviewAssignment{Status: AssignmentPending}, false},
		{"exactly at due", ReviewAssignment{Status: AssignmentPending, ReviewDue: &now}, false},
	}
	for _, tc := range cases {
		if got := tc.a.IsOverdue(now); got != tc.want {
			t.Errorf("%s: IsOverdue = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAssignmentIsActionable(t *testing.T) {
	actionable := []AssignmentStatus{AssignmentPending, AssignmentAccepted}
	for _, s := range actionable {
		a := ReviewAssignment{Status: s}
		if !a.IsActionable() {
			t.Errorf("expected %q to be actionable", s)
		}
	}
	for _, s := range []AssignmentStatus{AssignmentDeclined, AssignmentCompleted, AssignmentCancelled} {
		a := ReviewAssignment{Status: s}
		if a.IsActionable() {
			t.Errorf("expected %q not to be actionable", s)
		}
	}
}

func TestAllowedExtensions(t *testing.T) {
	manuscript := AllowedExtensions(FileKindManuscript)
	if len(manuscript) != 3 {
		t.Fatalf("unexpected manuscript whitelist: %v", manuscript)
	}
	for _, ext := range []string{"pdf", "doc", "docx"} {
		found := false
		for _, a := range manuscript {
			if a == ext {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q in the manuscript whitelist", ext)
		}
	}
}

func TestIsValidFileKind(t *testing.T) {
	for _, kind := range []string{FileKindManuscript, FileKindSupplementary, FileKindData, FileKindFigure, FileKindTable, FileKindOther} {
		if !IsValidFileKind(kind) {
			t.Errorf("expected %q to be valid", kind)
		}
	}
	if IsValidFileKind("archive") {
		t.Error("expected unknown kind to be invalid")
	}
}
