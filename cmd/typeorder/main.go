// Command typeorder is a small inspector over the type-order engine:
// it seeds the default Builder hierarchy, loads a YAML class catalog
// on top of it, and answers subtyping/lattice/linearization queries
// against the combined graph from the command line.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/arborlang/typeorder/internal/order"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s [-catalog path.yaml] <command> [args...]

Commands:
  less-or-equal A B   report whether A <= B
  join A B            print the least upper bound of A and B
  meet A B            print the greatest lower bound of A and B
  successors A        print A's MRO, head excluded
  linearize A         print A's full C3 linearization
  dot                 print the engine's graph in Graphviz DOT form
`, os.Args[0])
}

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	args := os.Args[1:]
	catalogPath := ""
	if len(args) >= 2 && args[0] == "-catalog" {
		catalogPath = args[1]
		args = args[2:]
	}

	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var b order.Builder
	engine := b.Default(b.Create(order.StdlibReporter{}))

	if catalogPath != "" {
		if err := loadCatalog(catalogPath, engine); err != nil {
			log.Fatalf("typeorder: %v", err)
		}
		engine.Normalize()
		engine.Deduplicate(engine.Keys())
		engine.RemoveExtraEdges()
		engine.ConnectAnnotationsToTop(nil)
		if err := engine.CheckIntegrity(); err != nil {
			log.Fatalf("typeorder: catalog produced an inconsistent graph: %v", err)
		}
	}
	ord := order.New(engine, nil, nil)
	color := colorEnabled(os.Stdout)

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "less-or-equal":
		err = runLessOrEqual(ord, rest, color)
	case "join":
		err = runJoin(ord, rest)
	case "meet":
		err = runMeet(ord, rest)
	case "successors":
		err = runSuccessors(ord, rest)
	case "linearize":
		err = runLinearize(ord, rest)
	case "dot":
		fmt.Println(engine.ToDot())
	case "-help", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("typeorder: %v", err)
	}
}

func runLessOrEqual(ord *order.Order, args []string, color bool) error {
	if len(args) != 2 {
		return fmt.Errorf("less-or-equal needs exactly two type arguments")
	}
	a, err := parseType(args[0])
	if err != nil {
		return err
	}
	b, err := parseType(args[1])
	if err != nil {
		return err
	}
	ok, err := ord.LessOrEqual(a, b)
	if err != nil {
		return err
	}
	fmt.Println(paintBool(ok, color))
	return nil
}

// paintBool renders a yes/no verdict, green-on-true and red-on-false,
// when color is enabled; otherwise it's just "true"/"false".
func paintBool(ok, color bool) string {
	if !color {
		return fmt.Sprintf("%t", ok)
	}
	if ok {
		return "\x1b[32mtrue\x1b[0m"
	}
	return "\x1b[31mfalse\x1b[0m"
}

func runJoin(ord *order.Order, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("join needs exactly two type arguments")
	}
	a, err := parseType(args[0])
	if err != nil {
		return err
	}
	b, err := parseType(args[1])
	if err != nil {
		return err
	}
	fmt.Println(ord.Join(a, b).String())
	return nil
}

func runMeet(ord *order.Order, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("meet needs exactly two type arguments")
	}
	a, err := parseType(args[0])
	if err != nil {
		return err
	}
	b, err := parseType(args[1])
	if err != nil {
		return err
	}
	fmt.Println(ord.Meet(a, b).String())
	return nil
}

func runSuccessors(ord *order.Order, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("successors needs exactly one type argument")
	}
	t, err := parseType(args[0])
	if err != nil {
		return err
	}
	chain, err := order.Successors(ord, t)
	if err != nil {
		return err
	}
	printChain(chain)
	return nil
}

func runLinearize(ord *order.Order, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("linearize needs exactly one type argument")
	}
	t, err := parseType(args[0])
	if err != nil {
		return err
	}
	chain, err := order.Linearize(ord, t)
	if err != nil {
		return err
	}
	printChain(chain)
	return nil
}

func printChain(chain []order.Type) {
	names := make([]string, len(chain))
	for i, t := range chain {
		names[i] = t.String()
	}
	fmt.Println(strings.Join(names, " -> "))
}

// colorEnabled mirrors the terminal-detection rule the rest of the
// pack uses for deciding whether to emit ANSI codes: NO_COLOR always
// wins, then a real TTY check, then TERM=dumb.
func colorEnabled(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
