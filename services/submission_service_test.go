package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"

	"journal-portal-api/models"
)

func TestGenerateSubmissionIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^SUB[0-9A-F]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := generateSubmissionID()
		if !pattern.MatchString(id) {
			t.Fatalf("unexpected submission id format: %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate submission id: %q", id)
		}
		seen[id] = true
	}
}

func TestValidateUploadAcceptsManuscriptFormats(t *testing.T) {
	for _, name := range []string{"paper.pdf", "paper.doc", "paper.docx", "PAPER.PDF"} {
		if err := ValidateUpload(name, 1024, models.FileKindManuscript); err != nil {
			t.Errorf("ValidateUpload(%q) = %v, want nil", name, err)
		}
	}
}

func TestValidateUploadRejectsBadExtension(t *testing.T) {
	err := ValidateUpload("paper.exe", 1024, models.FileKindManuscript)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if len(validation.Details) != 1 || !strings.Contains(validation.Details[0], "exe") {
		t.Errorf("unexpected details: %v", validation.Details)
	}
}

func TestValidateUploadRejectsOversize(t *testing.T) {
	err := ValidateUpload("paper.pdf", models.MaxFileSize+1, models.FileKindManuscript)
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestValidateUploadAtSizeLimit(t *testing.T) {
	if err := ValidateUpload("paper.pdf", models.MaxFileSize, models.FileKindManuscript); err != nil {
		t.Errorf("a file exactly at the limit must pass, got %v", err)
	}
}

func TestValidateUploadUnknownKind(t *testing.T) {
	err := ValidateUpload("notes.pdf", 1024, "archive")
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestValidateCoreFields(t *testing.T) {
	in := CreateSubmissionInput{TitleRu: "Заголовок", AbstractRu: "Аннотация", Language: "kk"}
	if details := validateCoreFields(&in); len(details) != 0 {
		t.Fatalf("expected no details, got %v", details)
	}

	in = CreateSubmissionInput{Language: "de"}
	details := validateCoreFields(&in)
	if len(details) != 3 {
		t.Fatalf("expected 3 details, got %v", details)
	}
}

func TestSubmitStampsStatusAndTime(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE id = \\?"),
			args:    []driver.Value{int64(7)},
			columns: []string{
				"id", "submission_id", "corresponding_author_id", "status",
				"title_ru", "abstract_ru", "section_id", "manuscript_name", "manuscript_path",
			},
			rows: [][]driver.Value{{
				int64(7), "SUB1A2B3C4D", int64(3), "draft",
				"Заголовок", "Аннотация", int64(2), "m.pdf", "/uploads/submissions/7/m.pdf",
			}},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET `submitted_at`=\\?,`updated_at`=\\? WHERE id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `submissions` SET `status`=\\?,`updated_at`=\\? WHERE id = \\?"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `submission_status_history`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
		// Post-commit notification reload; erroring it out keeps the
		// notifier quiet without affecting the result.
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE `submissions`\\.`id` = \\?"),
			err:     errors.New("connection gone"),
		},
	}
	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	submission, err := NewSubmissionService(gormDB).Submit(7, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submission.Status != models.SubmissionSubmitted {
		t.Errorf("status = %q, want %q", submission.Status, models.SubmissionSubmitted)
	}
	if submission.SubmittedAt == nil {
		t.Error("submitted_at must be stamped")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSubmitRejectsNonDraft(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE id = \\?"),
			columns: []string{"id", "corresponding_author_id", "status"},
			rows:    [][]driver.Value{{int64(7), int64(3), "submitted"}},
		},
	}
	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := NewSubmissionService(gormDB).Submit(7, 3)
	var precondition *PreconditionError
	if !errors.As(err, &precondition) {
		t.Fatalf("expected a precondition error, got %v", err)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	if !isDuplicateKeyError(errors.New("Error 1062: Duplicate entry '1-2' for key 'uniq_submission_reviewer'")) {
		t.Error("mysql duplicate entry must be detected")
	}
	if isDuplicateKeyError(errors.New("connection refused")) {
		t.Error("unrelated errors must not match")
	}
	if isDuplicateKeyError(nil) {
		t.Error("nil must not match")
	}
}
