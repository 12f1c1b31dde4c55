package model

import (
	"errors"
	"testing"

	"github.com/to404hanga/online_judge_contest/errs"
)

func TestLetterConversionRoundTrip(t *testing.T) {
	c := &Contest{PIDs: []int64{10, 20, 30}}

	letter, err := c.LetterOf(20)
	if err != nil {
		t.Fatalf("LetterOf(20) failed: %v", err)
	}
	if letter != "B" {
		t.Fatalf("LetterOf(20) = %q, want B", letter)
	}

	pid, err := c.PIDOf("B")
	if err != nil {
		t.Fatalf("PIDOf(B) failed: %v", err)
	}
	if pid != 20 {
		t.Fatalf("PIDOf(B) = %d, want 20", pid)
	}

	for _, l := range c.PIDs {
		letter, err := c.LetterOf(l)
		if err != nil {
			t.Fatalf("LetterOf(%d) failed: %v", l, err)
		}
		back, err := c.PIDOf(letter)
		if err != nil || back != l {
			t.Fatalf("round trip %d -> %s -> %d (%v)", l, letter, back, err)
		}
	}
}

func TestLetterConversionNotFound(t *testing.T) {
	c := &Contest{PIDs: []int64{10, 20, 30}}

	var notFound *errs.ContestProblemNotFoundError
	if _, err := c.LetterOf(99); !errors.As(err, &notFound) {
		t.Fatalf("LetterOf(99) error = %v, want ContestProblemNotFoundError", err)
	}
	for _, letter := range []string{"Z", "D", "", "a", "AB", "@"} {
		if _, err := c.PIDOf(letter); !errors.As(err, &notFound) {
			t.Fatalf("PIDOf(%q) error = %v, want ContestProblemNotFoundError", letter, err)
		}
	}
}

func TestContestStatusDefaults(t *testing.T) {
	s := &ContestStatus{}
	if !s.IsRanked() {
		t.Fatal("status without ranked flag should be ranked")
	}
	unranked := false
	s.Ranked = &unranked
	if s.IsRanked() {
		t.Fatal("status with ranked=false should not be ranked")
	}
	if s.IsAttended() {
		t.Fatal("zero status should not be attended")
	}
}
