package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"

	"memdex"
)

var (
	order = flag.Int("order", 4, "tree order (max keys per node)")
	seed  = flag.Int("seed", 0, "seed the tree with N fake records before starting")
)

var errColor = color.New(color.FgRed).FprintlnFunc()

func main() {
	flag.Parse()

	tree, err := memdex.New(*order)
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < *seed; i++ {
		k := []byte(faker.Word() + faker.Word())
		v := []byte(faker.Word())
		if err := tree.Set(k, v); err != nil {
			log.Fatal(err)
		}
	}

	repl{
		scanner:    bufio.NewScanner(os.Stdin),
		tree:       tree,
		visualizer: &memdex.Visualizer{Tree: tree},
	}.start()
}

type repl struct {
	scanner    *bufio.Scanner
	tree       *memdex.Tree
	visualizer *memdex.Visualizer
}

func (r repl) start() {
	r.printHelp()
	r.printPrompt()
	for r.scanner.Scan() {
		r.process(r.scanner.Text())
		r.printPrompt()
	}
}

func (r repl) printHelp() {
	fmt.Println(`
memdex CLI

Available Commands:
  SET <key> <val>      Insert or overwrite a key
  GET <key>            Retrieve the value for a key
  DEL <key>            Remove a key
  RANGE <lo> <hi>      List values for keys in [lo, hi]
  LEN                  Number of live keys
  DUMP                 Render the tree level by level
  CHECK                Verify structural invariants
  EXIT                 Terminate this session`)
}

func (r repl) printPrompt() {
	fmt.Print("> ")
}

func (r repl) process(line string) {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return
	}
	switch command := strings.ToLower(fields[0]); command {
	default:
		errColor(os.Stdout, "Unknown command:", command)
	case "set":
		r.set(fields[1:])
	case "get":
		r.get(fields[1:])
	case "del":
		r.del(fields[1:])
	case "range":
		r.scan(fields[1:])
	case "len":
		fmt.Println(r.tree.Len())
	case "dump":
		fmt.Print(r.visualizer.Visualize())
	case "check":
		r.check()
	case "exit":
		os.Exit(0)
	}
}

func (r repl) set(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: SET <key> <value>")
		return
	}
	if err := r.tree.Set([]byte(args[0]), []byte(args[1])); err != nil {
		errColor(os.Stdout, err)
		return
	}
	fmt.Print(r.visualizer.Visualize())
}

func (r repl) get(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: GET <key>")
		return
	}
	value, err := r.tree.Get([]byte(args[0]))
	if err != nil {
		errColor(os.Stdout, err)
		return
	}
	fmt.Println(string(value))
}

func (r repl) del(args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: DEL <key>")
		return
	}
	if err := r.tree.Delete([]byte(args[0])); err != nil {
		errColor(os.Stdout, err)
		return
	}
	fmt.Print(r.visualizer.Visualize())
}

func (r repl) scan(args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: RANGE <lo> <hi>")
		return
	}
	values, err := r.tree.Range([]byte(args[0]), []byte(args[1]))
	if err != nil {
		errColor(os.Stdout, err)
		return
	}
	for _, value := range values {
		fmt.Println(string(value))
	}
}

func (r repl) check() {
	if err := r.tree.Check(); err != nil {
		errColor(os.Stdout, err)
		return
	}
	fmt.Println("ok")
}
