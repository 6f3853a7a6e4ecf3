//go:build js && wasm

// package main provides the Wasm playground app.
package main

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"syscall/js"

	"github.com/theory/datefmt"
)

const (
	optParse int = 1 << iota
	optFormat
	optValidate
	optLocalTZ
)

func run(_ js.Value, args []js.Value) any {
	format := args[0].String()
	input := args[1].String()
	output := args[2].String()
	zone := args[3].String()
	loc := args[4].String()
	opts := args[5].Int()

	return execute(format, input, output, zone, loc, opts)
}

func main() {
	stream := make(chan struct{})

	js.Global().Set("datefmt", js.FuncOf(run))
	js.Global().Set("optParse", js.ValueOf(optParse))
	js.Global().Set("optFormat", js.ValueOf(optFormat))
	js.Global().Set("optValidate", js.ValueOf(optValidate))
	js.Global().Set("optLocalTZ", js.ValueOf(optLocalTZ))

	<-stream
}

func execute(format, input, output, zone, loc string, opts int) string {
	// Use the browser time zone if requested.
	if opts&optLocalTZ == optLocalTZ {
		zone = "Local"
	}

	engine, err := datefmt.New(datefmt.Config{TimeZone: zone, Locale: loc})
	if err != nil {
		return html.EscapeString(fmt.Sprintf("Error %v", err))
	}

	layout, err := engine.Compile(engine.ParseFormat(format))
	if err != nil {
		return html.EscapeString(fmt.Sprintf("Error %v", err))
	}

	var res string
	switch {
	case opts&optParse == optParse:
		res = parse(engine, layout, input, output)
	case opts&optFormat == optFormat:
		sec, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
		if err != nil {
			return html.EscapeString(fmt.Sprintf("Error %q is not a Unix timestamp", input))
		}
		res = layout.FormatUnix(sec)
	case opts&optValidate == optValidate:
		var buf strings.Builder
		for _, line := range strings.Split(input, "\n") {
			verdict := "invalid"
			if layout.Valid(line) {
				verdict = "valid"
			}
			fmt.Fprintf(&buf, "%v\t%v\n", verdict, line)
		}
		res = buf.String()
	}

	return html.EscapeString(res)
}

// parse parses input with layout and renders the result with the output
// format, or as a Unix timestamp and RFC 3339 if output is empty.
func parse(engine *datefmt.Engine, layout *datefmt.Layout, input, output string) string {
	res := layout.Parse(input)
	inst, ok := res.Instant()
	if !ok {
		return "invalid"
	}

	if output == "" {
		return fmt.Sprintf("%v\n%v", inst.Unix, res)
	}

	out, err := engine.Compile(engine.ParseFormat(output))
	if err != nil {
		return fmt.Sprintf("Error %v", err)
	}
	return out.Format(inst)
}
