package judge

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestWordlistJudgeValidate(t *testing.T) {
	j := NewWordlistJudge([]string{"cat", "HAT", " dog "})

	verdict, err := j.Validate(context.Background(), []string{"CAT", "DOG"}, "English")
	if err != nil {
		t.Fatal(err)
	}
	if !verdict.AllValid {
		t.Errorf("verdict = %+v, want all valid", verdict)
	}

	verdict, err = j.Validate(context.Background(), []string{"CAT", "ZZZZ"}, "English")
	if err != nil {
		t.Fatal(err)
	}
	if verdict.AllValid {
		t.Error("expected ZZZZ to be rejected")
	}
	if reasons := verdict.Reasons(); reasons == "" {
		t.Error("expected a rejection reason")
	}
}

func TestWordlistJudgeEmptyBatch(t *testing.T) {
	j := NewWordlistJudge(nil)
	verdict, err := j.Validate(context.Background(), nil, "English")
	if err != nil {
		t.Fatal(err)
	}
	if !verdict.AllValid {
		t.Error("empty batch should be valid")
	}
}

func TestLoadWordlistJudge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "# test lexicon\ncat\nhat\n\ndog\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	j, err := LoadWordlistJudge(path)
	if err != nil {
		t.Fatal(err)
	}
	if j.Len() != 3 {
		t.Errorf("loaded %d words, want 3", j.Len())
	}
}

func TestLoadWordlistJudgeMissingFile(t *testing.T) {
	if _, err := LoadWordlistJudge("/nonexistent/words.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
