package application

import "expvar"

// operations counts service calls by name, with a ".error" suffix for failures.
// Served at /debug/vars when debug metrics are enabled.
var operations = expvar.NewMap("operations")

func record(op string, err error) {
	if err != nil {
		operations.Add(op+".error", 1)
		return
	}
	operations.Add(op, 1)
}
