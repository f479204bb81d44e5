// Command wormula compiles a formula and evaluates it against a set
// of named variable bindings given on the command line.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/hce/wormula"
)

// varFlag collects repeated -var name=value flags.
type varFlag struct {
	entries []string
}

func (f *varFlag) String() string { return strings.Join(f.entries, ",") }

func (f *varFlag) Set(s string) error {
	f.entries = append(f.entries, s)
	return nil
}

func main() {
	var (
		formula    = flag.String("formula", "", "formula to compile and evaluate")
		disasm     = flag.Bool("disasm", false, "print the assembled bytecode instead of evaluating")
		iterations = flag.Int("iterations", 1, "number of times to run Instance.Run, for benchmarking")
		vars       varFlag
	)
	flag.Var(&vars, "var", "a name=value binding; repeatable")
	flag.Parse()

	if *formula == "" {
		log.Fatal("wormula: -formula is required")
	}

	ctx, err := wormula.NewContext()
	if err != nil {
		log.Fatalf("wormula: creating context: %v", err)
	}

	bindings, err := parseBindings(vars.entries)
	if err != nil {
		log.Fatalf("wormula: %v", err)
	}

	for name, b := range bindings {
		if err := ctx.DefineVar(name, b.kind); err != nil {
			log.Fatalf("wormula: defining %q: %v", name, err)
		}
	}

	term, err := ctx.Compile(*formula)
	if err != nil {
		log.Fatalf("wormula: compiling %q: %v", *formula, err)
	}

	if *disasm {
		fmt.Print(term.Disassemble())
		return
	}

	inst, err := term.Instantiate()
	if err != nil {
		log.Fatalf("wormula: instantiating: %v", err)
	}

	handles := make(map[string]*wormula.Variable, len(bindings))
	for name := range bindings {
		v, err := inst.GetVariable(name)
		if err != nil {
			log.Fatalf("wormula: getting variable %q: %v", name, err)
		}
		handles[name] = v
	}

	for name, b := range bindings {
		if err := b.apply(handles[name]); err != nil {
			log.Fatalf("wormula: setting %q: %v", name, err)
		}
	}

	if *iterations > 1 {
		start := time.Now()
		var result bool
		for i := 0; i < *iterations; i++ {
			result, err = inst.Run()
			if err != nil {
				log.Fatalf("wormula: evaluating: %v", err)
			}
		}
		elapsed := time.Since(start)
		fmt.Printf("%v (%d runs in %s, %s/run)\n", result, *iterations, elapsed, elapsed/time.Duration(*iterations))
		return
	}

	result, err := inst.Run()
	if err != nil {
		log.Fatalf("wormula: evaluating: %v", err)
	}
	fmt.Println(result)
}

type binding struct {
	kind   wormula.Kind
	str    string
	number float64
}

func (b binding) apply(v *wormula.Variable) error {
	switch b.kind {
	case wormula.KindString:
		return v.SetString(b.str)
	default:
		return v.SetFloat(b.number)
	}
}

// parseBindings turns "name=value" flags into typed bindings: a
// double-quoted value becomes a string, anything else is parsed as a
// float. Regex-typed variables aren't settable from the command line
// since the grammar only ever produces regexes as literals.
func parseBindings(entries []string) (map[string]binding, error) {
	out := make(map[string]binding, len(entries))
	for _, e := range entries {
		name, value, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("malformed -var %q, expected name=value", e)
		}
		if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2 {
			out[name] = binding{kind: wormula.KindString, str: strings.Trim(value, `"`)}
			continue
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("-var %q: %w", e, err)
		}
		out[name] = binding{kind: wormula.KindFloat, number: f}
	}
	return out, nil
}
