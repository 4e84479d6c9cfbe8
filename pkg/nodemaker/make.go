package nodemaker

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/flowcore/engine/pkg/node"
)

var titleCaser = cases.Title(language.Und)

// autoDescription turns a snake_case parameter name into a title-cased,
// space-separated label, used when a node class doesn't supply one.
// camelCase names are not split into words.
func autoDescription(name string) string {
	spaced := strings.ReplaceAll(name, "_", " ")
	return titleCaser.String(spaced)
}

// Options configures how Make derives a node.Class from a function.
type Options struct {
	// InputNames names each non-context, non-error parameter in order.
	InputNames []string
	// OutputNames names each return value in order. If the function
	// returns a single value (plus an optional trailing error), and
	// OutputNames is empty, the output is named "out".
	OutputNames []string
	// Defaults maps an input name to its default value. Inputs without a
	// default are required.
	Defaults map[string]interface{}
	// Description, Category, and RenderOptions carry through to the Class.
	Description   string
	Category      string
	RenderOptions map[string]interface{}
	// ReactiveHooks carries through to the Class unchanged.
	ReactiveHooks map[string][]node.ReactiveHook
}

// Make reflects over fn's signature and synthesizes a node.Class named
// nodeID. fn may optionally take a leading context.Context and/or return
// a trailing error; both are threaded through transparently and excluded
// from InputNames/OutputNames.
func Make(nodeID, nodeName string, fn interface{}, opts Options) (*node.Class, error) {
	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return nil, ErrNotAFunction
	}

	takesContext := fnType.NumIn() > 0 && fnType.In(0) == contextType
	firstParam := 0
	if takesContext {
		firstParam = 1
	}
	paramCount := fnType.NumIn() - firstParam
	if paramCount != len(opts.InputNames) {
		return nil, fmt.Errorf("%w: function has %d params, got %d names", ErrArityMismatch, paramCount, len(opts.InputNames))
	}

	returnsError := fnType.NumOut() > 0 && fnType.Out(fnType.NumOut()-1) == errorType
	resultCount := fnType.NumOut()
	if returnsError {
		resultCount--
	}
	outputNames := opts.OutputNames
	if len(outputNames) == 0 {
		if resultCount == 1 {
			outputNames = []string{"out"}
		} else if resultCount == 0 {
			outputNames = nil
		}
	}
	if resultCount != len(outputNames) {
		return nil, fmt.Errorf("%w: function returns %d values, got %d names", ErrArityMismatch, resultCount, len(outputNames))
	}

	inputs := make([]node.Spec, 0, paramCount)
	for i := 0; i < paramCount; i++ {
		name := opts.InputNames[i]
		paramType := fnType.In(firstParam + i)
		def, hasDefault := opts.Defaults[name]
		inputs = append(inputs, node.Spec{
			Name:        name,
			Description: autoDescription(name),
			Type:        typeKey(paramType),
			Default:     def,
			Required:    !hasDefault,
			DoesTrigger: true,
		})
	}

	outputs := make([]node.Spec, 0, resultCount)
	for i, name := range outputNames {
		outputs = append(outputs, node.Spec{
			Name:        name,
			Description: autoDescription(name),
			Type:        typeKey(fnType.Out(i)),
		})
	}

	evaluator := wrapEvaluator(fnVal, fnType, takesContext, returnsError, opts.InputNames, outputNames)

	return &node.Class{
		NodeID:        nodeID,
		NodeName:      nodeName,
		Description:   opts.Description,
		Category:      opts.Category,
		Inputs:        inputs,
		Outputs:       outputs,
		Evaluator:     evaluator,
		ReactiveHooks: opts.ReactiveHooks,
		RenderOptions: opts.RenderOptions,
	}, nil
}

// wrapEvaluator builds a node.Evaluator that calls fn synchronously and
// reports its result through the keyword-bag convention. The body runs
// inline on the calling goroutine; MakeAsync can wrap the result to run
// it on a runner instead.
func wrapEvaluator(fnVal reflect.Value, fnType reflect.Type, takesContext, returnsError bool, inputNames, outputNames []string) node.Evaluator {
	return func(ctx context.Context, inputs map[string]interface{}) (map[string]interface{}, error) {
		args := make([]reflect.Value, 0, fnType.NumIn())
		if takesContext {
			args = append(args, reflect.ValueOf(ctx))
		}
		for i, name := range inputNames {
			paramType := fnType.In(fnType.NumIn() - len(inputNames) + i)
			v := inputs[name]
			if node.IsNoValue(v) || v == nil {
				args = append(args, reflect.Zero(paramType))
				continue
			}
			rv := reflect.ValueOf(v)
			if rv.Type() != paramType && rv.Type().ConvertibleTo(paramType) {
				rv = rv.Convert(paramType)
			}
			args = append(args, rv)
		}

		results := fnVal.Call(args)

		if returnsError {
			if errVal := results[len(results)-1]; !errVal.IsNil() {
				return nil, errVal.Interface().(error)
			}
			results = results[:len(results)-1]
		}

		out := make(map[string]interface{}, len(outputNames))
		for i, name := range outputNames {
			out[name] = results[i].Interface()
		}
		return out, nil
	}
}

// MakeAsync wraps a synchronous, potentially slow evaluator so its body
// runs on the supplied runner; the node's goroutine waits in submit until
// the body completes. The runner's Submit must return once the function
// completes.
func MakeAsync(base node.Evaluator, submit func(ctx context.Context, fn func() (map[string]interface{}, error)) (map[string]interface{}, error)) node.Evaluator {
	return func(ctx context.Context, inputs map[string]interface{}) (map[string]interface{}, error) {
		return submit(ctx, func() (map[string]interface{}, error) {
			return base(ctx, inputs)
		})
	}
}
