package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", NewValidationError("pid"), http.StatusBadRequest},
		{"wrapped contest not found", fmt.Errorf("GetContest failed: %w", &ContestNotFoundError{DomainID: "system", ContestID: 1}), http.StatusNotFound},
		{"already attended", &ContestAlreadyAttendedError{DomainID: "system", ContestID: 1, UserID: 2}, http.StatusConflict},
		{"not attended", &ContestNotAttendedError{DomainID: "system", ContestID: 1, UserID: 2}, http.StatusForbidden},
		{"user not found", &UserNotFoundError{UserID: 3}, http.StatusNotFound},
		{"problem not found", &ContestProblemNotFoundError{Ref: "Z"}, http.StatusNotFound},
		{"scoreboard hidden", &ContestScoreboardHiddenError{ContestID: 1}, http.StatusForbidden},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("begin_at", "end_at")
	if err.Error() != "validation failed: begin_at, end_at" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if Reason(err) != "validation" {
		t.Fatalf("unexpected reason %q", Reason(err))
	}
}
