package models

import "testing"

func TestSubmissionStatusIsValid(t *testing.T) {
	valid := []SubmissionStatus{
		SubmissionDraft, SubmissionSubmitted, SubmissionReviewing,
		SubmissionReviewerAssigned, SubmissionReviewCompleted,
		SubmissionRevisionRequested, SubmissionRevisionSubmitted,
		SubmissionAccepted, SubmissionRejected, SubmissionPublished,
		SubmissionDeclined,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []SubmissionStatus{"", "pending", "DRAFT", "unknown"} {
		if s.IsValid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestSubmissionStatusIsTerminal(t *testing.T) {
	terminal := map[SubmissionStatus]bool{
		SubmissionPublished: true,
		SubmissionRejected:  true,
		SubmissionDeclined:  true,
		SubmissionDraft:     false,
		SubmissionSubmitted: false,
		SubmissionAccepted:  false,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("IsTerminal(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestSubmissionStatusCanWithdraw(t *testing.T) {
	if SubmissionPublished.CanWithdraw() {
		t.Error("published submissions must not be withdrawable")
	}
	if SubmissionDeclined.CanWithdraw() {
		t.Error("declined submissions must not be withdrawable")
	}
	for _, s := range []SubmissionStatus{
		SubmissionDraft, SubmissionSubmitted, SubmissionReviewerAssigned,
		SubmissionReviewCompleted, SubmissionRevisionRequested,
		SubmissionAccepted, SubmissionRejected,
	} {
		if !s.CanWithdraw() {
			t.Errorf("expected %q to be withdrawable", s)
		}
	}
}

func TestSubmissionStatusCanAssignReviewer(t *testing.T) {
	allowed := []SubmissionStatus{
		SubmissionSubmitted, SubmissionReviewing, SubmissionReviewerAssigned,
		SubmissionReviewCompleted, SubmissionRevisionRequested,
		SubmissionRevisionSubmitted, SubmissionAccepted,
	}
	for _, s := range allowed {
		if !s.CanAssignReviewer() {
			t.Errorf("expected reviewer assignment to be allowed in %q", s)
		}
	}
	blocked := []SubmissionStatus{
		SubmissionDraft, SubmissionRejected, SubmissionPublished,
		SubmissionDeclined, SubmissionStatus("bogus"),
	}
	for _, s := range blocked {
		if s.CanAssignReviewer() {
			t.Errorf("expected reviewer assignment to be blocked in %q", s)
		}
	}
}

// An editor may want a second opinion after all reviews are in.
func TestCanAssignReviewerAfterReviewCompleted(t *testing.T) {
	if !SubmissionReviewCompleted.CanAssignReviewer() {
		t.Error("reviewer assignment must stay open after review_completed")
	}
}

func TestStatusAfterDecision(t *testing.T) {
	cases := map[Decision]SubmissionStatus{
		DecisionAccept:        SubmissionAccepted,
		DecisionRevisionMinor: SubmissionRevisionRequested,
		DecisionRevisionMajor: SubmissionRevisionRequested,
		DecisionResubmit:      SubmissionRevisionRequested,
		DecisionReject:        SubmissionRejected,
	}
	for decision, want := range cases {
		if got := decision.StatusAfterDecision(); got != want {
			t.Errorf("StatusAfterDecision(%q) = %q, want %q", decision, got, want)
		}
	}
	if got := Decision("bogus").StatusAfterDecision(); got != "" {
		t.Errorf("unknown decision mapped to %q, want empty", got)
	}
}

// A decline verdict is recorded but never moves the submission: the declined
// status belongs to author withdrawal alone.
func TestDeclineDecisionLeavesStatusUnchanged(t *testing.T) {
	if got := DecisionDecline.StatusAfterDecision(); got != "" {
		t.Errorf("StatusAfterDecision(decline) = %q, want empty", got)
	}
	if DecisionDecline.IsFinal() {
		t.Error("decline must not be a final decision")
	}
}

func TestDecisionIsFinal(t *testing.T) {
	if !DecisionAccept.IsFinal() || !DecisionReject.IsFinal() {
		t.Error("accept and reject must be final")
	}
	for _, d := range []Decision{DecisionRevisionMinor, DecisionRevisionMajor, DecisionResubmit, DecisionDecline} {
		if d.IsFinal() {
			t.Errorf("expected %q not to be final", d)
		}
	}
}

func TestRecommendationIsValid(t *testing.T) {
	for _, r := range []Recommendation{RecommendAccept, RecommendMinorRevision, RecommendMajorRevision, RecommendReject} {
		if !r.IsValid() {
			t.Errorf("expected %q to be valid", r)
		}
	}
	if Recommendation("revise").IsValid() {
		t.Error("expected unknown recommendation to be invalid")
	}
}
