package validation

import (
	"strings"
	"testing"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/models"
)

func TestValidateArticleInput(t *testing.T) {
	tests := []struct {
		name    string
		input   models.ArticleInput
		wantErr bool
	}{
		{
			name:    "valid",
			input:   models.ArticleInput{Title: "Hello", Content: "body", Tags: []string{"go"}},
			wantErr: false,
		},
		{
			name:    "missing title",
			input:   models.ArticleInput{Content: "body"},
			wantErr: true,
		},
		{
			name:    "whitespace title",
			input:   models.ArticleInput{Title: "   "},
			wantErr: true,
		},
		{
			name:    "title too long",
			input:   models.ArticleInput{Title: strings.Repeat("x", MaxTitleLength+1)},
			wantErr: true,
		},
		{
			name:    "too many tags",
			input:   models.ArticleInput{Title: "ok", Tags: make([]string, MaxTagCount+1)},
			wantErr: true,
		},
		{
			name:    "blank tag",
			input:   models.ArticleInput{Title: "ok", Tags: []string{"go", " "}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArticleInput(&tt.input)
			if tt.wantErr && !apperrors.IsValidation(err) {
				t.Errorf("Expected validation error, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestValidateArticlePatch(t *testing.T) {
	empty := ""
	ok := "New Title"

	if err := ValidateArticlePatch(&models.ArticlePatch{Title: &empty}); !apperrors.IsValidation(err) {
		t.Errorf("Empty title should fail, got %v", err)
	}
	if err := ValidateArticlePatch(&models.ArticlePatch{Title: &ok}); err != nil {
		t.Errorf("Valid patch should pass, got %v", err)
	}
	// Nil fields mean "leave unchanged" and are never invalid.
	if err := ValidateArticlePatch(&models.ArticlePatch{}); err != nil {
		t.Errorf("Empty patch should pass, got %v", err)
	}
}

func TestValidateCommentContent(t *testing.T) {
	if err := ValidateCommentContent("short and sweet"); err != nil {
		t.Errorf("Valid comment should pass, got %v", err)
	}
	if err := ValidateCommentContent("   "); !apperrors.IsValidation(err) {
		t.Errorf("Blank comment should fail, got %v", err)
	}

	atLimit := strings.TrimSpace(strings.Repeat("word ", models.MaxCommentWords))
	if err := ValidateCommentContent(atLimit); err != nil {
		t.Errorf("Comment at the word limit should pass, got %v", err)
	}
	if err := ValidateCommentContent(atLimit + " overflow"); !apperrors.IsValidation(err) {
		t.Errorf("Comment over the word limit should fail, got %v", err)
	}
}

func TestValidateCredentials(t *testing.T) {
	if err := ValidateCredentials("user@example.com", "longenough"); err != nil {
		t.Errorf("Valid credentials should pass, got %v", err)
	}
	if err := ValidateCredentials("not-an-email", "longenough"); !apperrors.IsValidation(err) {
		t.Errorf("Bad email should fail, got %v", err)
	}
	if err := ValidateCredentials("user@example.com", "short"); !apperrors.IsValidation(err) {
		t.Errorf("Short password should fail, got %v", err)
	}
	if err := ValidateCredentials("", ""); !apperrors.IsValidation(err) {
		t.Errorf("Empty credentials should fail, got %v", err)
	}
}
