package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := ConfigError("invalid configuration").
			WithContext("file", "package.json").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityError {
			t.Errorf("expected severity %s, got %s", SeverityError, err.Severity())
		}
		file, exists := err.Context().GetString("file")
		if !exists || file != "package.json" {
			t.Errorf("expected context file=package.json, got %v", file)
		}
	})

	t.Run("Error string", func(t *testing.T) {
		plain := NotFoundError("static source not found").Build()
		if got, want := plain.Error(), "[not_found:error] static source not found"; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
		wrapped := FileSystemError("copy failed").WithCause(fmt.Errorf("disk full")).Build()
		if got, want := wrapped.Error(), "[filesystem:fatal] copy failed: disk full"; got != want {
			t.Errorf("Error() = %q, want %q", got, want)
		}
	})

	t.Run("Constructor classification", func(t *testing.T) {
		tests := []struct {
			err      *ClassifiedError
			category ErrorCategory
			fatal    bool
			retry    RetryStrategy
		}{
			{ConfigError("c").Build(), CategoryConfig, false, RetryUserAction},
			{ValidationError("v").Build(), CategoryValidation, false, RetryUserAction},
			{NotFoundError("n").Build(), CategoryNotFound, false, RetryUserAction},
			{FileSystemError("f").Build(), CategoryFileSystem, true, RetryNever},
			{PluginError("p").Build(), CategoryPlugin, true, RetryNever},
			{InternalError("i").Build(), CategoryInternal, true, RetryNever},
		}
		for _, tt := range tests {
			if !tt.err.IsCategory(tt.category) {
				t.Errorf("%s: category = %s", tt.err.Message(), tt.err.Category())
			}
			if tt.err.IsFatal() != tt.fatal {
				t.Errorf("%s: IsFatal() = %v, want %v", tt.err.Message(), tt.err.IsFatal(), tt.fatal)
			}
			if tt.err.RetryStrategy() != tt.retry {
				t.Errorf("%s: retry = %s, want %s", tt.err.Message(), tt.err.RetryStrategy(), tt.retry)
			}
		}
	})
}

func TestWithContextDoesNotMutateOriginal(t *testing.T) {
	base := FileSystemError("mkdir failed").WithContext("path", "/a").Build()
	derived := base.WithContext("operation", "mkdir")

	if _, ok := base.Context().Get("operation"); ok {
		t.Error("original error context was mutated")
	}
	if op, _ := derived.Context().GetString("operation"); op != "mkdir" {
		t.Errorf("derived operation = %q, want mkdir", op)
	}
	if p, _ := derived.Context().GetString("path"); p != "/a" {
		t.Errorf("derived path = %q, want /a", p)
	}
}

func TestChainHelpers(t *testing.T) {
	cause := stdErrors.New("permission denied")
	classified := FileSystemError("copy failed").WithCause(cause).Build()
	wrapped := fmt.Errorf("entry 2: %w", classified)

	if !IsClassified(wrapped) {
		t.Fatal("expected wrapped error to be classified")
	}
	if IsClassified(cause) {
		t.Error("plain errors are not classified")
	}
	if !HasCategory(wrapped, CategoryFileSystem) {
		t.Error("expected filesystem category through wrapping")
	}
	if HasCategory(cause, CategoryFileSystem) {
		t.Error("plain errors have no category")
	}
	if !stdErrors.Is(wrapped, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
}

func TestErrorContextMerge(t *testing.T) {
	a := ErrorContext{"k": 1, "shared": "a"}
	b := ErrorContext{"shared": "b"}
	merged := a.Merge(b)

	if merged["shared"] != "b" {
		t.Errorf("expected other to take precedence, got %v", merged["shared"])
	}
	if merged["k"] != 1 {
		t.Errorf("expected base key preserved, got %v", merged["k"])
	}
	if a["shared"] != "a" {
		t.Error("merge mutated receiver")
	}

	var nilCtx ErrorContext
	if got := nilCtx.Merge(b); got["shared"] != "b" {
		t.Error("nil receiver merge should return other")
	}
}
