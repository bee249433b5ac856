package accessgrant

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/community/backend/internal/domain/shared"
)

// MaxCodeAttempts bounds the generate-and-check loop. The six-digit keyspace
// holds a million codes, so hitting the bound means the space is effectively
// exhausted and the failure must surface instead of looping forever.
const MaxCodeAttempts = 25

// CodeChecker reports whether a code is already held by a live (non-cancelled)
// grant of the same entity. Backed by a partial unique index; the pre-insert
// check keeps the common path free of constraint-violation retries.
type CodeChecker interface {
	CodeInUse(ctx context.Context, code string) (bool, error)
}

// GenerateCode returns a random six-digit numeric access code
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand failure means the platform entropy source is broken
		panic(fmt.Sprintf("access code generation: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64()+100000)
}

// GenerateUniqueCode generates a code not currently in use, retrying on
// collision up to MaxCodeAttempts before failing with CODE_SPACE_EXHAUSTED.
func GenerateUniqueCode(ctx context.Context, checker CodeChecker) (string, error) {
	for i := 0; i < MaxCodeAttempts; i++ {
		code := GenerateCode()
		inUse, err := checker.CodeInUse(ctx, code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", shared.ErrCodeSpaceExhausted
}
