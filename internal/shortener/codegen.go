package shortener

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/jaevor/go-nanoid"
)

// Alphabet is the set of characters a generated code is drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var errInvalidCodeOptions = errors.New("invalid code options")

// CodeOptions bounds generated codes and the number of collision retries.
type CodeOptions struct {
	MinLength   int
	MaxLength   int
	MaxAttempts int
}

// DefaultCodeOptions returns 4 to 10 character codes with up to 10 attempts.
func DefaultCodeOptions() CodeOptions {
	return CodeOptions{MinLength: 4, MaxLength: 10, MaxAttempts: 10}
}

func (o CodeOptions) validate() error {
	switch {
	case o.MinLength < 2:
		return fmt.Errorf("%w: min length %d is below 2", errInvalidCodeOptions, o.MinLength)
	case o.MaxLength < o.MinLength:
		return fmt.Errorf("%w: max length %d is below min length %d", errInvalidCodeOptions, o.MaxLength, o.MinLength)
	case o.MaxAttempts < 1:
		return fmt.Errorf("%w: max attempts must be positive", errInvalidCodeOptions)
	}

	return nil
}

// CodeGenerator produces random codes that are not yet taken.
// It only probes for existence; callers still guard the insert.
type CodeGenerator struct {
	checker  CodeChecker
	opts     CodeOptions
	byLength map[int]func() string
}

// NewCodeGenerator builds a generator with one nanoid source per allowed length.
func NewCodeGenerator(checker CodeChecker, opts CodeOptions) (*CodeGenerator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	byLength := make(map[int]func() string, opts.MaxLength-opts.MinLength+1)

	for length := opts.MinLength; length <= opts.MaxLength; length++ {
		gen, err := nanoid.CustomASCII(Alphabet, length)
		if err != nil {
			return nil, fmt.Errorf("create generator for length %d: %w", length, err)
		}

		byLength[length] = gen
	}

	return &CodeGenerator{
		checker:  checker,
		opts:     opts,
		byLength: byLength,
	}, nil
}

// Options returns the bounds the generator was built with.
func (g *CodeGenerator) Options() CodeOptions {
	return g.opts
}

// Generate returns the first random code not already stored.
func (g *CodeGenerator) Generate(ctx context.Context) (Code, error) {
	for range g.opts.MaxAttempts {
		code := Code(g.byLength[g.randomLength()]())

		exists, err := g.checker.Exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrPersistence, err)
		}

		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("%w after %d attempts", ErrGenerationExhausted, g.opts.MaxAttempts)
}

func (g *CodeGenerator) randomLength() int {
	return g.opts.MinLength + rand.IntN(g.opts.MaxLength-g.opts.MinLength+1) //nolint:gosec
}
