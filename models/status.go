package models

// SubmissionStatus is the workflow state of a submission.
type SubmissionStatus string

const (
	SubmissionDraft             SubmissionStatus = "draft"
	SubmissionSubmitted         SubmissionStatus = "submitted"
	SubmissionReviewing         SubmissionStatus = "reviewing"
	SubmissionReviewerAssigned  SubmissionStatus = "reviewer_assigned"
	SubmissionReviewCompleted   SubmissionStatus = "review_completed"
	SubmissionRevisionRequested SubmissionStatus = "revision_requested"
	SubmissionRevisionSubmitted SubmissionStatus = "revision_submitted"
	SubmissionAccepted          SubmissionStatus = "accepted"
	SubmissionRejected          SubmissionStatus = "rejected"
	SubmissionPublished         SubmissionStatus = "published"
	SubmissionDeclined          SubmissionStatus = "declined"
)

// IsValid reports whether s is one of the known submission statuses.
func (s SubmissionStatus) IsValid() bool {
	switch s {
	case SubmissionDraft, SubmissionSubmitted, SubmissionReviewing,
		SubmissionReviewerAssigned, SubmissionReviewCompleted,
		SubmissionRevisionRequested, SubmissionRevisionSubmitted,
		SubmissionAccepted, SubmissionRejected, SubmissionPublished,
		SubmissionDeclined:
		return true
	}
	return false
}

// IsTerminal reports whether no further workflow transition is possible.
func (s SubmissionStatus) IsTerminal() bool {
	switch s {
	case SubmissionPublished, SubmissionRejected, SubmissionDeclined:
		return true
	}
	return false
}

// CanWithdraw reports whether the author may still withdraw the submission.
func (s SubmissionStatus) CanWithdraw() bool {
	return s != SubmissionPublished && s != SubmissionDeclined
}

// CanAssignReviewer reports whether an editor may invite a reviewer in this
// state. Any live submission qualifies, so a second opinion can still be
// solicited after review_completed or during a revision round; only drafts
// and terminal states are off limits.
func (s SubmissionStatus) CanAssignReviewer() bool {
	if !s.IsValid() || s == SubmissionDraft {
		return false
	}
	return !s.IsTerminal()
}

// AssignmentStatus is the state of a reviewer invitation.
type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentAccepted  AssignmentStatus = "accepted"
	AssignmentDeclined  AssignmentStatus = "declined"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

// ReviewStatus is the state of a single reviewer's evaluation.
type ReviewStatus string

const (
	ReviewAssigned   ReviewStatus = "assigned"
	ReviewInProgress ReviewStatus = "in_progress"
	ReviewCompleted  ReviewStatus = "completed"
)

// Decision is an editor's verdict on a submission.
type Decision string

const (
	DecisionAccept        Decision = "accept"
	DecisionRevisionMinor Decision = "revision_minor"
	DecisionRevisionMajor Decision = "revision_major"
	DecisionResubmit      Decision = "resubmit"
	DecisionReject        Decision = "reject"
	DecisionDecline       Decision = "decline"
)

// IsValid reports whether d is one of the known decisions.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionAccept, DecisionRevisionMinor, DecisionRevisionMajor,
		DecisionResubmit, DecisionReject, DecisionDecline:
		return true
	}
	return false
}

// IsFinal reports whether the decision closes the review process.
func (d Decision) IsFinal() bool {
	return d == DecisionAccept || d == DecisionReject
}

// StatusAfterDecision maps a decision to the resulting submission status.
// The accept branch is later overridden to published when the materializer
// succeeds; see services.DecisionService. An empty result means the decision
// is recorded without moving the submission: decline works that way, since
// the declined status is reserved for author withdrawal.
func (d Decision) StatusAfterDecision() SubmissionStatus {
	switch d {
	case DecisionAccept:
		return SubmissionAccepted
	case DecisionRevisionMinor, DecisionRevisionMajor, DecisionResubmit:
		return SubmissionRevisionRequested
	case DecisionReject:
		return SubmissionRejected
	case DecisionDecline:
		return ""
	}
	return ""
}

// Recommendation is a reviewer's suggested outcome.
type Recommendation string

const (
	RecommendAccept        Recommendation = "accept"
	RecommendMinorRevision Recommendation = "minor_revision"
	RecommendMajorRevision Recommendation = "major_revision"
	RecommendReject        Recommendation = "reject"
)

// IsValid reports whether r is one of the known recommendations.
func (r Recommendation) IsValid() bool {
	switch r {
	case RecommendAccept, RecommendMinorRevision, RecommendMajorRevision, RecommendReject:
		return true
	}
	return false
}
