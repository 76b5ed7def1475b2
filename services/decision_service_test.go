package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"journal-portal-api/models"
)

// A decline verdict is appended to the decision history but the submission
// keeps its status; only the author can move it to declined by withdrawing.
func TestDeclineDecisionRecordsWithoutTransition(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE id = \\?"),
			args:    []driver.Value{int64(7)},
			columns: []string{"id", "submission_id", "corresponding_author_id", "status"},
			rows:    [][]driver.Value{{int64(7), "SUB1A2B3C4D", int64(3), "reviewing"}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `editorial_decisions`"),
			result:  scriptedResult{lastInsertID: 31, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET `editor_decision_date`=\\?,`updated_at`=\\? WHERE id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
		// No status update and no history row: the script ends here apart
		// from the post-commit notification reload.
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE `submissions`\\.`id` = \\?"),
			err:     errors.New("connection gone"),
		},
	}
	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	result, err := NewDecisionService(gormDB).Decide(7, 9, DecideInput{Decision: models.DecisionDecline})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Decision == nil || result.Decision.DecisionID != 31 {
		t.Fatalf("expected decision 31, got %+v", result.Decision)
	}
	if result.Decision.IsFinal {
		t.Error("decline must not be recorded as final")
	}
	if result.Article != nil {
		t.Error("decline must not materialize an article")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
