package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blog-platform-api/internal/apperrors"
	"github.com/blog-platform-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const (
	MaxTitleLength    = 200
	MaxTagCount       = 10
	MaxTagLength      = 50
	MinPasswordLength = 8
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// asError folds field errors into one error carrying the validation kind,
// or nil when the list is empty
func asError(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Field + ": " + e.Message
	}
	return fmt.Errorf("%s: %w", strings.Join(parts, "; "), apperrors.ErrValidation)
}

// ValidateArticleInput validates a new article payload
func ValidateArticleInput(input *models.ArticleInput) error {
	var errs []ValidationError

	if strings.TrimSpace(input.Title) == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "title is required"})
	} else if len(input.Title) > MaxTitleLength {
		errs = append(errs, ValidationError{Field: "title", Message: fmt.Sprintf("title exceeds %d characters", MaxTitleLength)})
	}

	errs = append(errs, validateTags(input.Tags)...)
	return asError(errs)
}

// ValidateArticlePatch validates a partial article update
func ValidateArticlePatch(patch *models.ArticlePatch) error {
	var errs []ValidationError

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			errs = append(errs, ValidationError{Field: "title", Message: "title cannot be empty"})
		} else if len(*patch.Title) > MaxTitleLength {
			errs = append(errs, ValidationError{Field: "title", Message: fmt.Sprintf("title exceeds %d characters", MaxTitleLength)})
		}
	}
	if patch.Tags != nil {
		errs = append(errs, validateTags(*patch.Tags)...)
	}
	return asError(errs)
}

func validateTags(tags []string) []ValidationError {
	var errs []ValidationError
	if len(tags) > MaxTagCount {
		errs = append(errs, ValidationError{Field: "tags", Message: fmt.Sprintf("at most %d tags allowed", MaxTagCount)})
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			errs = append(errs, ValidationError{Field: "tags", Message: "tags cannot be blank"})
			break
		}
		if len(tag) > MaxTagLength {
			errs = append(errs, ValidationError{Field: "tags", Message: fmt.Sprintf("tag %q exceeds %d characters", tag, MaxTagLength)})
		}
	}
	return errs
}

// ValidateCommentContent validates a comment body against the word limit
func ValidateCommentContent(content string) error {
	var errs []ValidationError

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		errs = append(errs, ValidationError{Field: "content", Message: "content is required"})
	} else if words := len(strings.Fields(trimmed)); words > models.MaxCommentWords {
		errs = append(errs, ValidationError{Field: "content", Message: fmt.Sprintf("content exceeds %d words", models.MaxCommentWords)})
	}
	return asError(errs)
}

// ValidateCredentials validates a signup email and password
func ValidateCredentials(email, password string) error {
	var errs []ValidationError

	if email == "" {
		errs = append(errs, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, ValidationError{Field: "email", Message: "invalid email format"})
	}

	if len(password) < MinPasswordLength {
		errs = append(errs, ValidationError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)})
	}
	return asError(errs)
}

// ValidateProfilePatch validates a partial profile update
func ValidateProfilePatch(patch *models.ProfilePatch) error {
	var errs []ValidationError

	if patch.Username != nil && strings.TrimSpace(*patch.Username) == "" {
		errs = append(errs, ValidationError{Field: "username", Message: "username cannot be empty"})
	}
	return asError(errs)
}
