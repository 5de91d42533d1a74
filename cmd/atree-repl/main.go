package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	atree "github.com/JrodM/a-tree-go"
	"github.com/alecthomas/kong"
)

const helpText = `atree-repl interactive A-Tree engine

Commands:
  insert <id> <expr>   Compile expr and subscribe id to it
  delete <id>          Remove id's subscription
  search <attr=value ...>  Build an event from attr=value pairs and search it
  count                Print the number of live DAG nodes
  dot                  Print the current DAG as a Graphviz digraph
  help                 Show this help message
  exit / quit          Exit the REPL

Event values are typed by their literal shape, not by the schema:
true/false as booleans, whole numbers as integers, other numbers as
decimals, everything else as a bare string. List attributes are not
settable from the REPL shorthand.
`

// cli is parsed once at startup with kong; --attr (-a) lets a caller declare a
// custom schema instead of the built-in demo one ("age:integer",
// "country:string", "private:boolean", "price:float").
var cli struct {
	Attr []string `help:"Declare an attribute as name:kind (boolean|integer|float|string). Repeatable." short:"a"`
	Expr string   `help:"Evaluate a single insert expression in one-shot mode instead of starting the REPL." short:"e"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("atree-repl"),
		kong.Description("Interactive demo for the A-Tree matching engine."),
	)

	definitions, err := parseSchema(cli.Attr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "schema error:", err)
		os.Exit(1)
	}

	engine, err := atree.New[string](definitions)
	if err != nil {
		fmt.Fprintln(os.Stderr, "engine error:", err)
		os.Exit(1)
	}

	if cli.Expr != "" {
		runOneShot(engine, cli.Expr)
		return
	}

	runREPL(engine)
}

// demoSchema is used when no --attr flags are given.
func demoSchema() []atree.Definition {
	return []atree.Definition{
		atree.Bool("private"),
		atree.Int("age"),
		atree.Dec("price"),
		atree.Str("country"),
	}
}

func parseSchema(attrs []string) ([]atree.Definition, error) {
	if len(attrs) == 0 {
		return demoSchema(), nil
	}
	defs := make([]atree.Definition, 0, len(attrs))
	for _, spec := range attrs {
		name, kind, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("malformed --attr %q, want name:kind", spec)
		}
		switch kind {
		case "boolean":
			defs = append(defs, atree.Bool(name))
		case "integer":
			defs = append(defs, atree.Int(name))
		case "float":
			defs = append(defs, atree.Dec(name))
		case "string":
			defs = append(defs, atree.Str(name))
		default:
			return nil, fmt.Errorf("unknown kind %q in --attr %q", kind, spec)
		}
	}
	return defs, nil
}

func runOneShot(engine *atree.ATree[string], expr string) {
	if err := engine.Insert("oneshot", expr); err != nil {
		fmt.Fprintln(os.Stderr, "insert error:", err)
		os.Exit(1)
	}
	fmt.Println(engine.ToGraphviz())
}

func runREPL(engine *atree.ATree[string]) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("atree-repl — in-memory boolean expression matching engine")
	fmt.Println(`Type "help" for available commands.`)
	fmt.Println()

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "exit", "quit":
			return

		case "help":
			fmt.Print(helpText)

		case "count":
			fmt.Println(engine.NodeCount())

		case "dot":
			fmt.Println(engine.ToGraphviz())

		case "insert":
			if len(parts) < 3 {
				fmt.Fprintln(os.Stderr, "usage: insert <id> <expr>")
				continue
			}
			id := parts[1]
			expr := strings.TrimSpace(strings.TrimPrefix(line, parts[0]+" "+parts[1]+" "))
			if err := engine.Insert(id, expr); err != nil {
				fmt.Fprintln(os.Stderr, "insert error:", err)
				continue
			}
			fmt.Printf("subscribed %q\n", id)

		case "delete":
			if len(parts) < 2 {
				fmt.Fprintln(os.Stderr, "usage: delete <id>")
				continue
			}
			engine.Delete(parts[1])
			fmt.Printf("deleted %q\n", parts[1])

		case "search":
			report, err := searchLine(engine, parts[1:])
			if err != nil {
				fmt.Fprintln(os.Stderr, "search error:", err)
				continue
			}
			fmt.Printf("matches: %v\n", report.Matches())

		default:
			fmt.Fprintf(os.Stderr, "unknown command %q, try 'help'\n", cmd)
		}
	}
}

// searchLine builds an Event from a list of attr=value tokens, guessing
// each value's kind from its literal shape (true/false -> boolean,
// parseable int/float -> numeric, otherwise a bare string), and searches
// it against engine.
func searchLine(engine *atree.ATree[string], pairs []string) (atree.Report[string], error) {
	builder := engine.MakeEvent()
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return atree.Report[string]{}, fmt.Errorf("malformed attr=value pair %q", pair)
		}
		if err := setFromLiteral(builder, name, raw); err != nil {
			return atree.Report[string]{}, err
		}
	}
	event, err := builder.Build()
	if err != nil {
		return atree.Report[string]{}, err
	}
	return engine.Search(event), nil
}

func setFromLiteral(builder *atree.EventBuilder, name, raw string) error {
	switch raw {
	case "true":
		return builder.WithBoolean(name, true)
	case "false":
		return builder.WithBoolean(name, false)
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return builder.WithInteger(name, i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		mantissa := int64(f * 100)
		return builder.WithFloat(name, mantissa, 2)
	}
	return builder.WithString(name, raw)
}
