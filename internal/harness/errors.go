package harness

import (
	"errors"

	"github.com/arbitrary-number/quantix/internal/collapse"
	"github.com/arbitrary-number/quantix/internal/compiler"
	"github.com/arbitrary-number/quantix/internal/engine"
	"github.com/arbitrary-number/quantix/internal/expr"
	"github.com/arbitrary-number/quantix/internal/number"
	"github.com/arbitrary-number/quantix/internal/register"
)

// ErrorCodeCompile is reported for document compile errors.
const ErrorCodeCompile = "COMPILE_ERROR"

// ErrorCode returns the code carried by a quantix error, or "" when err
// carries none.
func ErrorCode(err error) string {
	var (
		ee *expr.EvalError
		ce *collapse.Error
		re *register.Error
		ne *number.Error
		ue *engine.RunError
		pe *compiler.CompileError
	)
	switch {
	case errors.As(err, &ee):
		return string(ee.Code)
	case errors.As(err, &ce):
		return string(ce.Code)
	case errors.As(err, &re):
		return string(re.Code)
	case errors.As(err, &ne):
		return string(ne.Code)
	case errors.As(err, &ue):
		return string(ue.Code)
	case errors.As(err, &pe):
		return ErrorCodeCompile
	}
	return ""
}
