package interpreter

import "time"

// defineBuiltins pre-populates env (the global environment) with the
// language's native function library: clock, the only member required.
func defineBuiltins(env *environment) {
	start := time.Now()
	env.define("clock", &nativeFunction{
		name: "clock",
		n:    0,
		fn: func(in *Interpreter, args []value) value {
			return numberValue(float64(time.Since(start).Milliseconds()))
		},
	})
}
