package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pegparse/peg"
)

// Demo driver: matches arithmetic expressions with the recovering
// engine, printing the best-effort tree and every diagnostic instead
// of stopping at the first bad character.
func main() {
	flags := pflag.NewFlagSet("peg", pflag.ExitOnError)
	inputPath := flags.String("input", "", "Path to a file to parse instead of the command line arguments")
	showTree := flags.Bool("tree", true, "Print the parse tree")
	showStats := flags.Bool("stats", false, "Print the rule graph statistics and exit")
	_ = flags.Parse(os.Args[1:])

	root := expressionGrammar()

	if *showStats {
		fmt.Print(peg.StatisticsFor(root))
		return
	}

	text := strings.Join(flags.Args(), " ")
	if *inputPath != "" {
		data, err := os.ReadFile(*inputPath)
		if err != nil {
			fatal("can't open input file: %s", err)
		}
		text = strings.TrimRight(string(data), "\n")
	}
	if text == "" {
		fatal("nothing to parse: pass an expression or --input FILE")
	}

	node, parseErrors, err := peg.Parse(root, text)
	if err != nil {
		fatal("%s", err)
	}

	for _, e := range parseErrors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}
	if *showTree && node != nil {
		fmt.Println(node.Pretty(peg.NewInput(text)))
	}
	if len(parseErrors) > 0 {
		os.Exit(1)
	}
}

// expressionGrammar builds the usual arithmetic grammar:
//
//	Expr   <- Term (('+' / '-') Term)*
//	Term   <- Factor (('*' / '/') Factor)*
//	Factor <- Number / '(' Expr ')'
//	Number <- [0-9]+
func expressionGrammar() peg.Matcher {
	r := peg.NewRules()

	var expr, term, factor, number func() peg.Matcher

	number = func() peg.Matcher {
		return r.Get("Number", func() peg.Matcher {
			return peg.OneOrMore(peg.CharRange('0', '9'))
		})
	}
	factor = func() peg.Matcher {
		return r.Get("Factor", func() peg.Matcher {
			return peg.FirstOf(
				number(),
				peg.Sequence(peg.Char('('), expr(), peg.Char(')')),
			)
		})
	}
	term = func() peg.Matcher {
		return r.Get("Term", func() peg.Matcher {
			return peg.Sequence(
				factor(),
				peg.ZeroOrMore(peg.Sequence(peg.AnyOf("*/"), factor())),
			)
		})
	}
	expr = func() peg.Matcher {
		return r.Get("Expr", func() peg.Matcher {
			return peg.Sequence(
				term(),
				peg.ZeroOrMore(peg.Sequence(peg.AnyOf("+-"), term())),
			)
		})
	}
	return expr()
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: ")
	fmt.Fprintf(os.Stderr, format, args...)
	fmt.Fprintf(os.Stderr, "\n")
	os.Exit(1)
}
