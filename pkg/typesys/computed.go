package typesys

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// ComputedConverter builds a Converter whose acceptance test is an
// expr-lang/expr boolean expression evaluated against the candidate
// value, exposed to the expression as "value". A false result rejects
// the value with ErrComputedRejected; a non-bool result is an error.
func ComputedConverter(expression string) (Converter, error) {
	program, err := expr.Compile(expression, expr.Env(map[string]interface{}{"value": nil}))
	if err != nil {
		return nil, fmt.Errorf("typesys: invalid computed expression: %w", err)
	}

	return func(value interface{}) (interface{}, error) {
		out, err := expr.Run(program, map[string]interface{}{"value": value})
		if err != nil {
			return nil, fmt.Errorf("typesys: computed expression failed: %w", err)
		}
		ok, isBool := out.(bool)
		if !isBool {
			return nil, fmt.Errorf("typesys: computed expression must return bool, got %T", out)
		}
		if !ok {
			return nil, ErrComputedRejected
		}
		return value, nil
	}, nil
}
