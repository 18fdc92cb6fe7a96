package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("validation error")

// ValidationError describes input rejected before it reaches the API.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

const (
	minBoardNameLen  = 3
	maxBoardNameLen  = 50
	maxTitleLen      = 255
	maxCommentLength = 1000
)

// ValidateBoardName checks a board name: 3 to 50 characters made of ASCII
// letters, digits and spaces.
func ValidateBoardName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "Board name cannot be empty")
	}
	n := utf8.RuneCountInString(name)
	if n < minBoardNameLen {
		return invalid("name", "Board name must be at least 3 characters")
	}
	if n > maxBoardNameLen {
		return invalid("name", "Board name must be less than 50 characters")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
		default:
			return invalid("name", "Board name can only contain letters, numbers, and spaces")
		}
	}
	return nil
}

func ValidateFeedback(s FeedbackSubmission) error {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		return invalid("title", "Title is required.")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return invalid("title", "Title cannot exceed 255 characters")
	}
	if strings.TrimSpace(s.Description) == "" {
		return invalid("description", "Description is required.")
	}
	if s.CategoryID <= 0 {
		return invalid("categoryId", "Category is required.")
	}
	if s.BoardID <= 0 {
		return invalid("boardId", "Invalid board ID")
	}
	return nil
}

// ValidateComment applies to both comments and replies.
func ValidateComment(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return invalid("content", "Comment cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return invalid("content", "Comment cannot exceed 1000 characters")
	}
	return nil
}
