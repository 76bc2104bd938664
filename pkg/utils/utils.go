package utils

import (
	"context"
	"log"
	"runtime/debug"
	"strings"

	"hotnews-aggregator/pkg/logger"
)

// GoSafe runs fn in a new goroutine and recovers from panics so a single
// misbehaving task cannot take the process down.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether the context is still alive, logging when it is not.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("Context cancelled, stopping work", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}

// ContainsString reports whether s is present in list.
func ContainsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// CleanToValidUTF8 replaces invalid UTF-8 sequences so values are safe to persist.
func CleanToValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// TruncateRunes shortens s to at most limit runes.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}
