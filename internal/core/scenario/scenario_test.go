package scenario

import (
	"reflect"
	"testing"

	"github.com/example/smartqa/internal/apperrors"
)

func TestNormalizeSteps(t *testing.T) {
	tests := []struct {
		name    string
		steps   []string
		want    []string
		wantErr bool
	}{
		{
			name:  "drops blanks and trims",
			steps: []string{"  ", "Click login", ""},
			want:  []string{"Click login"},
		},
		{
			name:  "keeps order",
			steps: []string{" Open page ", "Click", "Verify "},
			want:  []string{"Open page", "Click", "Verify"},
		},
		{
			name:    "all blank is rejected",
			steps:   []string{"", "   ", "\t"},
			wantErr: true,
		},
		{
			name:    "nil is rejected",
			steps:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeSteps(tt.steps)
			if tt.wantErr {
				if !apperrors.IsValidation(err) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if err.Error() != "at least one step required" {
					t.Errorf("unexpected message %q", err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsValidPriorityAndStatus(t *testing.T) {
	for _, p := range []string{"critical", "high", "medium", "low"} {
		if !IsValidPriority(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	if IsValidPriority("urgent") || IsValidPriority("") {
		t.Error("expected unknown priority to be invalid")
	}
	if !IsValidStatus("archived") || IsValidStatus("done") {
		t.Error("status validation wrong")
	}
}
