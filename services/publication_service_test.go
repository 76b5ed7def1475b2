package services

import (
	"database/sql/driver"
	"regexp"
	"testing"
)

func materializeSteps(articleRows [][]driver.Value, saveStep *queryStep) []*queryStep {
	return []*queryStep{
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `submissions` WHERE id = \\?"),
			args:    []driver.Value{int64(7)},
			columns: []string{
				"id", "submission_id", "status", "title_ru", "abstract_ru",
				"section_id", "corresponding_author_id", "manuscript_name", "manuscript_path", "language",
			},
			rows: [][]driver.Value{{
				int64(7), "SUB1A2B3C4D", "accepted", "Заголовок", "Аннотация",
				int64(2), int64(3), "m.pdf", "/uploads/submissions/7/m.pdf", "ru",
			}},
		},
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `submission_authors` WHERE `submission_authors`\\.`submission_id` = \\?"),
			args:    []driver.Value{int64(7)},
			columns: []string{"submission_author_id", "submission_id", "author_id", "author_order", "is_corresponding"},
			rows: [][]driver.Value{
				{int64(1), int64(7), int64(3), int64(1), true},
				{int64(2), int64(7), int64(5), int64(2), false},
			},
		},
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `issues` ORDER BY year DESC, number DESC"),
			columns: []string{"issue_id", "year", "number", "status"},
			rows:    [][]driver.Value{{int64(3), int64(2025), int64(2), "draft"}},
		},
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `articles` WHERE submission_id = \\?"),
			args:    []driver.Value{int64(7)},
			columns: []string{"article_id", "issue_id", "submission_id", "pdf_name", "pdf_path", "page_start", "page_end", "status"},
			rows:    articleRows,
		},
		saveStep,
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("DELETE FROM `article_authors` WHERE article_id = \\?"),
			args:    []driver.Value{int64(21)},
			result:  scriptedResult{rowsAffected: 2},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `article_authors`"),
			args:    []driver.Value{int64(21), int64(3), int64(21), int64(5)},
			result:  scriptedResult{rowsAffected: 2},
		},
	}
}

// Re-running the projection must update the one article row keyed by the
// submission and leave an already attached PDF alone.
func TestMaterializeTwiceUpdatesSameArticle(t *testing.T) {
	firstRun := materializeSteps(nil, &queryStep{
		kind:    kindExec,
		pattern: regexp.MustCompile("INSERT INTO `articles`"),
		result:  scriptedResult{lastInsertID: 21, rowsAffected: 1},
	})
	secondRun := materializeSteps(
		[][]driver.Value{{int64(21), int64(3), int64(7), "final.pdf", "/uploads/articles/final.pdf", int64(1), int64(2), "published"}},
		&queryStep{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `articles` SET "),
			result:  scriptedResult{rowsAffected: 1},
		},
	)
	gormDB, state, cleanup := newScriptedGormDB(t, append(firstRun, secondRun...))
	defer cleanup()

	svc := NewPublicationService(gormDB)

	first, err := svc.Materialize(7)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first == nil || first.ArticleID != 21 {
		t.Fatalf("first run produced %+v, want article 21", first)
	}

	second, err := svc.Materialize(7)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second == nil || second.ArticleID != 21 {
		t.Fatalf("second run produced %+v, want the same article 21", second)
	}
	if second.PDFPath == nil || *second.PDFPath != "/uploads/articles/final.pdf" {
		t.Errorf("an attached PDF must survive re-materialization, got %v", second.PDFPath)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestNormalizePages(t *testing.T) {
	cases := []struct {
		start, end         int
		wantStart, wantEnd int
	}{
		{0, 0, 1, 2},
		{1, 0, 1, 2},
		{5, 5, 5, 6},
		{10, 4, 10, 11},
		{3, 9, 3, 9},
		{-2, -1, 1, 2},
	}
	for _, tc := range cases {
		start, end := normalizePages(tc.start, tc.end)
		if start != tc.wantStart || end != tc.wantEnd {
			t.Errorf("normalizePages(%d, %d) = (%d, %d), want (%d, %d)",
				tc.start, tc.end, start, end, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestLatestIssuePicksMaxYearNumber(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `issues` ORDER BY year DESC, number DESC"),
			columns: []string{"issue_id", "year", "number", "status"},
			rows:    [][]driver.Value{{int64(7), int64(2026), int64(2), "draft"}},
		},
	}
	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	issue, err := LatestIssue(gormDB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issue == nil {
		t.Fatal("expected an issue")
	}
	if issue.IssueID != 7 || issue.Year != 2026 || issue.Number != 2 {
		t.Errorf("unexpected issue: %+v", issue)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestLatestIssueNoneExists(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `issues` ORDER BY year DESC, number DESC"),
			columns: []string{"issue_id", "year", "number", "status"},
			rows:    [][]driver.Value{},
		},
	}
	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	issue, err := LatestIssue(gormDB)
	if err != nil {
		t.Fatalf("a missing issue must not be an error, got %v", err)
	}
	if issue != nil {
		t.Fatalf("expected nil issue, got %+v", issue)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestLatestPublishedIssueFiltersStatus(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile("SELECT \\* FROM `issues` WHERE status = \\?"),
			args:    []driver.Value{"published"},
			columns: []string{"issue_id", "year", "number", "status"},
			rows:    [][]driver.Value{{int64(4), int64(2025), int64(4), "published"}},
		},
	}
	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	issue, err := LatestPublishedIssue(gormDB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issue == nil || issue.IssueID != 4 {
		t.Fatalf("unexpected issue: %+v", issue)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
