// Command formdata decodes a flat form-submission bag from a YAML or JSON
// file and prints the extracted nested structure as JSON.
//
// YAML input is a mapping (or a stream of mappings) whose entries keep
// document order, which drives `[]` append numbering:
//
//	settings.mode: dark
//	favouriteFrameworks[].name: Go
//
// JSON input is an array of [key, value] string pairs.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	formdata "github.com/lorefnon/go-formdata"
)

func main() {
	fs := flag.NewFlagSet("formdata", flag.ExitOnError)
	var (
		in     = fs.String("in", "-", "input file ('-' reads stdin)")
		format = fs.String("format", "auto", "input format: auto, yaml or json")
		view   = fs.String("view", "combined", "output view: combined, fields or files")
		pretty = fs.Bool("pretty", false, "indent JSON output")
		strict = fs.Bool("strict", false, "exit non-zero when any entry was rejected")
		debug  = fs.Bool("debug", false, "dump the full extraction result to stderr")
	)
	_ = fs.Parse(os.Args[1:])

	data, err := readInput(*in)
	if err != nil {
		fatalf("read %s: %v", *in, err)
	}
	bag, err := decodeBag(data, *format)
	if err != nil {
		fatalf("decode bag: %v", err)
	}

	res, err := formdata.Extract(bag)
	if err != nil {
		fatalf("extract: %v", err)
	}
	for _, it := range res.Issues {
		fmt.Fprintf(os.Stderr, "%s at %s: %s\n", it.Code, it.Key, it.Message)
	}
	if *debug {
		spew.Fdump(os.Stderr, res)
	}

	var tree map[string]any
	switch *view {
	case "combined":
		tree = res.Combined
	case "fields":
		tree = res.Fields
	case "files":
		tree = res.Files
	default:
		fatalf("unknown view %q", *view)
	}

	out, err := marshalJSON(tree, *pretty)
	if err != nil {
		fatalf("marshal: %v", err)
	}
	os.Stdout.Write(out)
	fmt.Println()

	if *strict && len(res.Issues) > 0 {
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func decodeBag(data []byte, format string) (formdata.Bag, error) {
	if format == "auto" {
		if isJSON(data) {
			format = "json"
		} else {
			format = "yaml"
		}
	}
	switch format {
	case "json":
		return decodeJSONBag(data)
	case "yaml":
		return decodeYAMLBag(data)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func isJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

func decodeJSONBag(data []byte) (formdata.Bag, error) {
	var pairs [][]string
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, err
	}
	bag := make(formdata.Bag, 0, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, fmt.Errorf("pair %d: want [key, value], got %d elements", i, len(p))
		}
		bag = append(bag, formdata.Entry{Key: p[0], Value: formdata.Text(p[1])})
	}
	return bag, nil
}

// decodeYAMLBag reads a stream of YAML mappings via yaml.Node so entry
// order survives; a plain map[string]any would lose it.
func decodeYAMLBag(data []byte) (formdata.Bag, error) {
	var bag formdata.Bag
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return bag, nil
			}
			return nil, err
		}
		node := &doc
		if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
			node = node.Content[0]
		}
		if node.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: expected a mapping of flat keys", node.Line)
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			k, v := node.Content[i], node.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: value of %q must be a scalar", v.Line, k.Value)
			}
			bag = append(bag, formdata.Entry{Key: k.Value, Value: formdata.Text(v.Value)})
		}
	}
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "formdata: "+format+"\n", args...)
	os.Exit(1)
}
