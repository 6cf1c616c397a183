package stages

import (
	"context"
	"fmt"
	"reflect"

	"github.com/sayedpfe/tenantctl/pkg/types"
)

// Stage represents a pipeline stage that processes input of type I and produces output of type O.
// It takes a context for cancellation, a slice of options for configuration, and an input channel of type I.
// It returns an output channel of type O.
type Stage[I any, O any] func(ctx context.Context, opts []*types.Option, in <-chan I) <-chan O

// ChainStages chains multiple stages together, ensuring that the output type
// of each stage matches the input type of the next stage. It returns a single
// stage function that processes the input through all stages sequentially.
func ChainStages[I any, O any](stages ...any) (Stage[I, O], error) {
	if len(stages) == 0 {
		return nil, fmt.Errorf("no stages provided")
	}

	for i, stage := range stages {
		if err := validateFunctionSignature(stage); err != nil {
			return nil, fmt.Errorf("stage %d: %v", i, err)
		}
	}

	var inType I
	var outType O
	if err := ValidateStages(inType, outType, stages...); err != nil {
		return nil, err
	}

	return func(ctx context.Context, opts []*types.Option, in <-chan I) <-chan O {
		var chanIn reflect.Value
		var chanOut reflect.Value
		chanIn = reflect.ValueOf(in)
		for i := 0; i < len(stages); i++ {
			stageFunc := reflect.ValueOf(stages[i])
			chanOut = stageFunc.Call([]reflect.Value{
				reflect.ValueOf(ctx),
				reflect.ValueOf(opts),
				chanIn,
			})[0]

			chanIn = chanOut
		}

		// The final conversion is safe because ValidateStages checked the
		// last stage's output channel type.
		return chanOut.Interface().(<-chan O)
	}, nil
}

// ValidateStages checks the compatibility of a series of stages: the output
// type of each stage must match the input type of the next, the first stage
// must accept In, and the last stage must produce Out.
func ValidateStages(In any, Out any, stages ...any) error {
	if len(stages) > 1 {
		for i := 0; i < len(stages)-1; i++ {
			if err := validateStageCompatibility(stages[i], stages[i+1]); err != nil {
				return err
			}
		}
	}

	stageTypeIn := reflect.TypeOf(stages[0]).In(2).Elem()
	if stageTypeIn != reflect.TypeOf(In) {
		return fmt.Errorf("first stage input type %s does not match ChainStages input type %s",
			stageTypeIn, reflect.TypeOf(In))
	}

	lastStageOutType := reflect.TypeOf(stages[len(stages)-1]).Out(0).Elem()
	if lastStageOutType != reflect.TypeOf(Out) {
		return fmt.Errorf("last stage output type %s does not match ChainStages output type %s",
			lastStageOutType, reflect.TypeOf(Out))
	}

	return nil
}

func validateFunctionSignature(stage interface{}) error {
	stageType := reflect.TypeOf(stage)
	if stageType.Kind() != reflect.Func {
		return fmt.Errorf("stage is not a function")
	}

	if stageType.NumIn() != 3 {
		return fmt.Errorf("stage function must have exactly 3 input parameters")
	}

	if stageType.In(0) != reflect.TypeOf((*context.Context)(nil)).Elem() {
		return fmt.Errorf("first parameter of stage function must be context.Context")
	}

	if stageType.In(1) != reflect.TypeOf([]*types.Option{}) {
		return fmt.Errorf("second parameter of stage function must be []*types.Option")
	}

	if stageType.In(2).Kind() != reflect.Chan {
		return fmt.Errorf("third parameter of stage function must be a channel")
	}

	if stageType.NumOut() != 1 {
		return fmt.Errorf("stage function must have exactly 1 output parameter")
	}

	if stageType.Out(0).Kind() != reflect.Chan {
		return fmt.Errorf("output parameter of stage function must be a channel")
	}

	return nil
}

func validateStageCompatibility(stage1, stage2 interface{}) error {
	stage1Type := reflect.TypeOf(stage1)
	stage2Type := reflect.TypeOf(stage2)

	stage1OutType := stage1Type.Out(0).Elem()
	stage2InType := stage2Type.In(2).Elem()

	if !stage1OutType.AssignableTo(stage2InType) {
		return fmt.Errorf("stage output of type %s is not compatible with next stage input of type %s",
			stage1OutType, stage2InType)
	}
	return nil
}

// Generator takes a slice of any type and returns a read-only channel that
// emits each element of the slice and then closes.
func Generator[T any](inputs []T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, input := range inputs {
			out <- input
		}
	}()
	return out
}
