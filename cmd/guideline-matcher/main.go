// Command guideline-matcher is the CLI companion to the guideline matching
// engine: it checks and canonically formats rulesets, and evaluates an
// encounter token set against a ruleset.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	guidelinematcher "github.com/pediguide/matcher"
	"github.com/pediguide/matcher/engine"
	"github.com/pediguide/matcher/feature"
	"github.com/pediguide/matcher/registry"
	"github.com/pediguide/matcher/ruleset"
	"github.com/pediguide/matcher/terminology"
)

const usage = `guideline-matcher - pediatric guideline ruleset tool

Usage:
  guideline-matcher check [-output text|json] <ruleset.json>
  guideline-matcher fmt   [-write] <ruleset.json>
  guideline-matcher eval  [-terminology snomed.sqlite] [-output text|json] -tokens <tokens.json> <ruleset.json>

Commands:
  check   Validate a ruleset: JSON syntax, schema, and authoring lint.
  fmt     Print (or rewrite with -write) the canonical form of a ruleset.
  eval    Evaluate a token set against a ruleset and print ranked matches.

Exit codes: 0 ok, 1 invalid input, 2 usage error.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "check":
		err = runCheck(os.Args[2:])
	case "fmt":
		err = runFmt(os.Args[2:])
	case "eval":
		err = runEval(os.Args[2:])
	case "version":
		fmt.Println("guideline-matcher " + guidelinematcher.Version)
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	output := fs.String("output", "text", "output format: text or json")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("check: expected exactly one ruleset file")
	}
	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	doc, err := ruleset.Load(data)
	if err != nil {
		return reportLoadError(err, *output)
	}

	catalog, err := registry.Default()
	if err != nil {
		return err
	}
	issues := ruleset.Lint(doc, catalog)

	if *output == "json" {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"valid":  true,
			"rules":  len(doc.Rules),
			"issues": issues,
		})
	}

	fmt.Printf("ok: %d rule(s)\n", len(doc.Rules))
	for _, issue := range issues {
		fmt.Println("  " + issue.String())
	}
	return nil
}

func runFmt(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)
	write := fs.Bool("write", false, "rewrite the file in place instead of printing")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("fmt: expected exactly one ruleset file")
	}
	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	doc, err := ruleset.Load(data)
	if err != nil {
		return err
	}
	out, err := ruleset.Format(doc)
	if err != nil {
		return err
	}

	if *write {
		return os.WriteFile(path, out, 0o644)
	}
	_, err = os.Stdout.Write(out)
	return err
}

func runEval(args []string) error {
	fs := flag.NewFlagSet("eval", flag.ExitOnError)
	tokensPath := fs.String("tokens", "", "token set JSON file (required)")
	termPath := fs.String("terminology", "", "SNOMED-subset SQLite file; omit to evaluate without ancestry tests")
	output := fs.String("output", "text", "output format: text or json")
	fs.Parse(args)

	if fs.NArg() != 1 || *tokensPath == "" {
		return errors.New("eval: expected -tokens <file> and exactly one ruleset file")
	}

	rulesData, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	tokensData, err := os.ReadFile(*tokensPath)
	if err != nil {
		return err
	}
	tokens, err := feature.ParseSet(tokensData)
	if err != nil {
		return err
	}

	var matches []guidelinematcher.Match
	if *termPath != "" {
		log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

		// One metrics instance observes the store's descendant cache and
		// the engine's evaluations alike.
		metrics := guidelinematcher.NewMetrics()
		store, err := terminology.LoadSQLite(*termPath, log, func(b *terminology.Builder) {
			b.WithLookupRecorder(metrics)
		})
		if err != nil {
			return err
		}
		eng, err := engine.New(store, guidelinematcher.WithMetricsSink(metrics))
		if err != nil {
			return err
		}
		doc, err := eng.LoadDocument(rulesData)
		if err != nil {
			return reportLoadError(err, *output)
		}
		matches = eng.Evaluate(tokens, doc)
	} else {
		doc, err := ruleset.Load(rulesData)
		if err != nil {
			return reportLoadError(err, *output)
		}
		matches = engine.Evaluate(tokens, doc, nil)
	}

	if *output == "json" {
		return json.NewEncoder(os.Stdout).Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, m := range matches {
		fmt.Printf("[%3d] %s (%s)\n", m.Priority, m.FlagText, m.RuleID)
		if m.Note != "" {
			fmt.Println("      " + m.Note)
		}
	}
	return nil
}

// reportLoadError prints a load failure in the requested format and returns
// a terse error for the exit path. Syntax and schema failures are reported
// distinctly so authors know which tier rejected the document.
func reportLoadError(err error, output string) error {
	var synErr *guidelinematcher.SyntaxError
	var schErr *guidelinematcher.SchemaError

	if output == "json" {
		out := map[string]any{"valid": false}
		switch {
		case errors.As(err, &synErr):
			out["syntaxError"] = synErr
		case errors.As(err, &schErr):
			out["schemaError"] = schErr
		default:
			out["error"] = err.Error()
		}
		json.NewEncoder(os.Stdout).Encode(out)
		return errors.New("ruleset is invalid")
	}

	return err
}
