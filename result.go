package docmorph

import "time"

// Result reports the outcome of one conversion.
type Result struct {
	// OK is true when the output file was written completely.
	OK bool

	// OutputPath is the written file on success.
	OutputPath string

	// Err holds the failure message when OK is false.
	Err string

	// Method names the conversion path taken, for example "pdf-layout"
	// or "office-suite".
	Method string

	// Elapsed is the wall time the conversion took.
	Elapsed time.Duration
}

// failure builds an error result.
func failure(method string, elapsed time.Duration, err error) Result {
	return Result{Method: method, Elapsed: elapsed, Err: err.Error()}
}

// success builds an OK result.
func success(method, outputPath string, elapsed time.Duration) Result {
	return Result{OK: true, Method: method, OutputPath: outputPath, Elapsed: elapsed}
}
