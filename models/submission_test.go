package models

import "testing"

func readyDraft() Submission {
	section := 3
	path := "/uploads/submissions/1/manuscript.pdf"
	return Submission{
		Status:         SubmissionDraft,
		TitleRu:        "Оценка методов",
		AbstractRu:     "Аннотация",
		SectionID:      &section,
		ManuscriptPath: &path,
	}
}

func TestSubmitBlockersComplete(t *testing.T) {
	s := readyDraft()
	if blockers := s.SubmitBlockers(); len(blockers) != 0 {
		t.Fatalf("expected no blockers, got %v", blockers)
	}
	if !s.CanBeSubmitted() {
		t.Error("expected submission to be submittable")
	}
}

func TestSubmitBlockersMissingPieces(t *testing.T) {
	s := readyDraft()
	s.TitleRu = ""
	s.SectionID = nil
	s.ManuscriptPath = nil

	blockers := s.SubmitBlockers()
	if len(blockers) != 3 {
		t.Fatalf("expected 3 blockers, got %v", blockers)
	}
	if s.CanBeSubmitted() {
		t.Error("incomplete draft must not be submittable")
	}
}

func TestSubmitBlockersNotDraft(t *testing.T) {
	s := readyDraft()
	s.Status = SubmissionSubmitted
	blockers := s.SubmitBlockers()
	if len(blockers) != 1 || blockers[0] != "submission is not a draft" {
		t.Fatalf("expected the not-a-draft blocker, got %v", blockers)
	}
}

func TestHasManuscript(t *testing.T) {
	s := Submission{}
	if s.HasManuscript() {
		t.Error("expected no manuscript")
	}
	empty := ""
	s.ManuscriptPath = &empty
	if s.HasManuscript() {
		t.Error("empty path must not count as a manuscript")
	}
}

func TestGetTitleFallsBackToRussian(t *testing.T) {
	s := Submission{TitleRu: "Заголовок", TitleEn: "Title"}
	if got := s.GetTitle("en"); got != "Title" {
		t.Errorf("GetTitle(en) = %q", got)
	}
	if got := s.GetTitle("kk"); got != "Заголовок" {
		t.Errorf("GetTitle(kk) = %q, want russian fallback", got)
	}
	if got := s.GetTitle("ru"); got != "Заголовок" {
		t.Errorf("GetTitle(ru) = %q", got)
	}
}

func TestDisplayTitleRu(t *testing.T) {
	cases := []struct {
		name string
		s    Submission
		want string
	}{
		{"russian present", Submission{TitleRu: "Заголовок", TitleEn: "Title"}, "Заголовок"},
		{"english fallback", Submission{TitleEn: "Title", TitleKk: "Тақырып"}, "Title"},
		{"kazakh fallback", Submission{TitleKk: "Тақырып"}, "Тақырып"},
		{"all empty", Submission{}, "Без названия"},
	}
	for _, tc := range cases {
		if got := tc.s.DisplayTitleRu(); got != tc.want {
			t.Errorf("%s: DisplayTitleRu() = %q, want %q", tc.name, got, tc.want)
		}
	}
}
