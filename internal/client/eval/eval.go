// Package eval evaluates note expressions with a safe math-expression
// engine: plain arithmetic only, no identifiers, no code execution.
package eval

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

// ErrEvaluation is returned for any expression that cannot be evaluated to
// a finite number. Callers show a generic message; no partial result is
// ever produced.
var ErrEvaluation = errors.New("invalid math equation")

// Evaluate parses and runs text against an empty environment and returns
// the numeric result. Supported: + - * / ( ) . ^ % over integers and
// floats. Parse failures, runtime failures (integer division by zero) and
// non-finite results all yield ErrEvaluation.
func Evaluate(text string) (float64, error) {
	program, err := expr.Compile(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	out, err := expr.Run(program, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	var result float64
	switch v := out.(type) {
	case int:
		result = float64(v)
	case int64:
		result = float64(v)
	case float64:
		result = v
	default:
		return 0, fmt.Errorf("%w: non-numeric result", ErrEvaluation)
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, fmt.Errorf("%w: non-finite result", ErrEvaluation)
	}
	return result, nil
}
