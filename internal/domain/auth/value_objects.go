package auth

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrInvalidCode    = errors.New("verification code must be 4 digits")
	ErrCodeMismatch   = errors.New("verification code does not match")
	ErrCodeNotIssued  = errors.New("no verification code was issued")
	ErrCodeGeneration = errors.New("failed to generate verification code")
)

var codeRegex = regexp.MustCompile(`^\d{4}$`)

const (
	codeMin   = 1000
	codeRange = 9000
)

type VerificationCode struct {
	value string
}

func NewVerificationCode(s string) (VerificationCode, error) {
	s = strings.TrimSpace(s)
	if !codeRegex.MatchString(s) {
		return VerificationCode{}, ErrInvalidCode
	}
	return VerificationCode{value: s}, nil
}

func (c VerificationCode) Value() string {
	return c.value
}

// Matches compares against the code stored for the user.
func (c VerificationCode) Matches(issued *string) error {
	if issued == nil || *issued == "" {
		return ErrCodeNotIssued
	}
	if *issued != c.value {
		return ErrCodeMismatch
	}
	return nil
}

type CodeGenerator interface {
	Generate() (VerificationCode, error)
}

// RandomCodeGenerator issues codes in 1000..9999.
type RandomCodeGenerator struct{}

func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{}
}

func (g *RandomCodeGenerator) Generate() (VerificationCode, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return VerificationCode{}, ErrCodeGeneration
	}
	return VerificationCode{value: strconv.FormatInt(codeMin+n.Int64(), 10)}, nil
}

// FixedCodeGenerator always returns the same code. Used by tests.
type FixedCodeGenerator struct {
	Code string
}

func (g FixedCodeGenerator) Generate() (VerificationCode, error) {
	return NewVerificationCode(g.Code)
}
