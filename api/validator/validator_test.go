package validator

import (
	"strings"
	"testing"
)

type commentInput struct {
	Content   string `validate:"required,min=20,max=300"`
	UserID    string `validate:"required"`
	UserLogin string `validate:"required"`
}

func TestValidator_ValidateStruct(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   commentInput
		wantErr bool
		fields  []string
	}{
		{
			name: "Valid",
			input: commentInput{
				Content:   strings.Repeat("x", 20),
				UserID:    "u1",
				UserLogin: "alice",
			},
		},
		{
			name: "ContentBelowMinimum",
			input: commentInput{
				Content:   strings.Repeat("x", 19),
				UserID:    "u1",
				UserLogin: "alice",
			},
			wantErr: true,
			fields:  []string{"Content"},
		},
		{
			name: "ContentAboveMaximum",
			input: commentInput{
				Content:   strings.Repeat("x", 301),
				UserID:    "u1",
				UserLogin: "alice",
			},
			wantErr: true,
			fields:  []string{"Content"},
		},
		{
			name: "MissingRequiredFields",
			input: commentInput{
				Content: strings.Repeat("x", 20),
			},
			wantErr: true,
			fields:  []string{"UserID", "UserLogin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateStruct(tt.input)

			if tt.wantErr && len(errs) == 0 {
				t.Fatal("ValidateStruct() expected errors but got none")
			}
			if !tt.wantErr && len(errs) > 0 {
				t.Fatalf("ValidateStruct() got unexpected errors: %v", errs)
			}

			for _, wantField := range tt.fields {
				found := false
				for _, err := range errs {
					if err.Field == wantField {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("Expected a validation error for field %s, but got none", wantField)
				}
			}
		})
	}
}

func TestNew(t *testing.T) {
	if v := New(); v == nil || v.cli == nil {
		t.Error("New() returned invalid validator")
	}
}
