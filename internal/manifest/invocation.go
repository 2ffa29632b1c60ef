package manifest

import (
	"github.com/takumiyoshikawa/dscgen/internal/ordered"
	"github.com/takumiyoshikawa/dscgen/internal/resource"
)

// invocation returns the executable and argument list DSC uses to run op.
func invocation(op resource.Operation, className, resourceType string, opts Options) (string, []any) {
	if opts.UseResourceScript {
		script := opts.ScriptFile
		if script == "" {
			script = DefaultScriptFile
		}
		args := []any{
			"-NoLogo",
			"-NonInteractive",
			"-File", script,
			"-Operation", string(op),
			"-ResourceType", className,
			jsonInputArg("-InputJson"),
		}
		return "pwsh", args
	}

	executable := opts.Executable
	if executable == "" {
		executable = PlaceholderExecutable
	}
	args := []any{
		string(op),
		"--resource", resourceType,
		jsonInputArg("--input"),
	}
	return executable, args
}

func jsonInputArg(flag string) *ordered.Map {
	arg := ordered.New()
	arg.Set("jsonInputArg", flag)
	arg.Set("mandatory", true)
	return arg
}
