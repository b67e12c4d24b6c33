package config

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ErrInvalid is matched by every ValidationError.
var ErrInvalid = errors.New("invalid configuration")

// FieldError names one offending setting.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every problem found by Validate.
type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// Add records a problem with field.
func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{Field: field, Message: msg})
}

// Is lets errors.Is(err, ErrInvalid) match.
func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// HasAny reports whether any problem was recorded.
func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// FileError reports an unreadable or unparsable config file.
type FileError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Validate checks the settings the publishing loop cannot run without.
func (c Config) Validate() error {
	var v ValidationError

	if c.WordPress.URL == "" {
		v.Add("wordpress.url", "is required ("+wpURLEnv+")")
	} else if u, err := url.Parse(c.WordPress.URL); err != nil || u.Scheme == "" || u.Host == "" {
		v.Add("wordpress.url", "must be an absolute URL")
	}
	if c.WordPress.Username == "" {
		v.Add("wordpress.username", "is required ("+wpUsernameEnv+")")
	}
	if c.WordPress.AppPassword == "" {
		v.Add("wordpress.appPassword", "is required ("+wpAppPasswordEnv+")")
	}
	switch c.WordPress.PostStatus {
	case "publish", "draft", "pending":
	default:
		v.Add("wordpress.postStatus", fmt.Sprintf("unsupported status %q", c.WordPress.PostStatus))
	}

	if c.Gemini.APIKey == "" {
		v.Add("gemini.apiKey", "is required ("+geminiAPIKeyEnv+")")
	}

	if len(c.Categories) == 0 {
		v.Add("categories", "at least one category is required")
	}
	cities := 0
	for _, list := range c.Locations {
		cities += len(list)
	}
	if cities == 0 {
		v.Add("locations", "at least one city is required")
	}

	if c.Scheduler.MaxBetween < c.Scheduler.MinBetween {
		v.Add("scheduler.maxBetween", "must not be shorter than minBetween")
	}

	if v.HasAny() {
		return v
	}
	return nil
}

// CategoryNames returns the configured categories in a stable order.
func (c Config) CategoryNames() []string {
	names := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
