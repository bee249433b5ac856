package accessgrant

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/community/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCodeChecker struct {
	taken map[string]bool
	err   error
	calls int
}

func (f *fakeCodeChecker) CodeInUse(_ context.Context, code string) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.taken[code], nil
}

func TestGenerateCode_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^[1-9]\d{5}$`)
	for i := 0; i < 100; i++ {
		code := GenerateCode()
		assert.Regexp(t, pattern, code)
	}
}

func TestGenerateUniqueCode(t *testing.T) {
	t.Run("returns first free code", func(t *testing.T) {
		checker := &fakeCodeChecker{taken: map[string]bool{}}

		code, err := GenerateUniqueCode(context.Background(), checker)

		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Equal(t, 1, checker.calls)
	})

	t.Run("fails loudly when the keyspace is exhausted", func(t *testing.T) {
		// Every code reads as taken, so the bounded retry must give up
		allTaken := &exhaustedChecker{}

		code, err := GenerateUniqueCode(context.Background(), allTaken)

		require.ErrorIs(t, err, shared.ErrCodeSpaceExhausted)
		assert.Empty(t, code)
		assert.Equal(t, MaxCodeAttempts, allTaken.calls)
	})

	t.Run("propagates checker errors", func(t *testing.T) {
		checker := &fakeCodeChecker{err: errors.New("connection refused")}

		_, err := GenerateUniqueCode(context.Background(), checker)

		require.Error(t, err)
		assert.Equal(t, 1, checker.calls)
	})
}

type exhaustedChecker struct {
	calls int
}

func (e *exhaustedChecker) CodeInUse(context.Context, string) (bool, error) {
	e.calls++
	return true, nil
}

func TestGenerateUniqueCode_NoDuplicatesInSequence(t *testing.T) {
	checker := &fakeCodeChecker{taken: map[string]bool{}}
	seen := map[string]bool{}

	for i := 0; i < 200; i++ {
		code, err := GenerateUniqueCode(context.Background(), checker)
		require.NoError(t, err)
		require.False(t, seen[code], "duplicate code %s issued while keyspace has capacity", code)
		seen[code] = true
		checker.taken[code] = true
	}
}
