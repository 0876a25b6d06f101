// Command dagcbor encodes, decodes, validates, and renders canonical
// DAG-CBOR documents from the command line, using a restricted JSON
// mapping for the encode/decode directions.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/synadia-labs/dagcbor/dagcbor"
)

// CLI is the top-level command set. Each subcommand reads its input from
// stdin and writes its result to stdout, so the tool composes in a shell
// pipeline the way cborgen's own single-purpose invocation does.
type CLI struct {
	Encode   EncodeCmd   `cmd:"" help:"Convert JSON on stdin to canonical DAG-CBOR hex on stdout."`
	Decode   DecodeCmd   `cmd:"" help:"Convert DAG-CBOR hex on stdin to JSON on stdout."`
	Validate ValidateCmd `cmd:"" help:"Check that stdin is well-formed canonical DAG-CBOR hex."`
	Diag     DiagCmd     `cmd:"" help:"Render DAG-CBOR hex on stdin as RFC 8949 diagnostic notation."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("dagcbor"),
		kong.Description("Encode, decode, validate, and inspect canonical DAG-CBOR documents."),
	)
	ctx.FatalIfErrorf(ctx.Run())
}

type EncodeCmd struct {
	MaxDepth int `help:"Maximum list/map nesting depth." default:"256"`
}

func (c *EncodeCmd) Run() error {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	v, err := valueFromJSON(raw)
	if err != nil {
		return err
	}
	enc := &dagcbor.Encoder{MaxDepth: c.MaxDepth}
	out, err := enc.Encode(v)
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(out))
	return nil
}

type DecodeCmd struct {
	MaxDepth    int  `help:"Maximum list/map nesting depth." default:"256"`
	AllowConcat bool `help:"Accept and print one JSON value per concatenated top-level item instead of rejecting trailing bytes." name:"allow-concat"`
}

func (c *DecodeCmd) Run() error {
	values, err := decodeStdinHex(c.MaxDepth, c.AllowConcat)
	if err != nil {
		return err
	}
	for _, v := range values {
		rendered, err := valueToJSON(v)
		if err != nil {
			return err
		}
		out, err := json.Marshal(rendered)
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		fmt.Println(string(out))
	}
	return nil
}

type ValidateCmd struct {
	MaxDepth    int  `help:"Maximum list/map nesting depth." default:"256"`
	AllowConcat bool `help:"Accept multiple concatenated top-level items instead of rejecting trailing bytes." name:"allow-concat"`
}

func (c *ValidateCmd) Run() error {
	raw, err := readHexStdin()
	if err != nil {
		return err
	}
	dec := &dagcbor.Decoder{MaxDepth: c.MaxDepth}

	if !c.AllowConcat {
		if _, err := dec.Decode(raw); err != nil {
			if de, ok := err.(*dagcbor.DecodeError); ok {
				fmt.Println(dagcbor.HexSnippet(raw, de.Offset, 8))
			}
			return err
		}
		fmt.Println("ok")
		return nil
	}

	rest := raw
	count := 0
	for len(rest) > 0 {
		consumedBefore := len(raw) - len(rest)
		_, next, err := dec.DecodeAllowConcat(rest)
		if err != nil {
			if de, ok := err.(*dagcbor.DecodeError); ok {
				de.Offset += consumedBefore
				fmt.Println(dagcbor.HexSnippet(raw, de.Offset, 8))
			}
			return err
		}
		rest = next
		count++
	}
	fmt.Printf("ok (%d items)\n", count)
	return nil
}

type DiagCmd struct {
	MaxDepth    int  `help:"Maximum list/map nesting depth." default:"256"`
	AllowConcat bool `help:"Render one diagnostic-notation line per concatenated top-level item instead of rejecting trailing bytes." name:"allow-concat"`
}

func (c *DiagCmd) Run() error {
	values, err := decodeStdinHex(c.MaxDepth, c.AllowConcat)
	if err != nil {
		return err
	}
	for _, v := range values {
		rendered, err := dagcbor.RenderDiagnostic(v)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
	}
	return nil
}

// decodeStdinHex decodes stdin's hex-encoded bytes as either exactly one
// value (rejecting trailing bytes) or, with allowConcat, every value in
// the concatenated sequence of top-level items (spec §6 allow_concat).
func decodeStdinHex(maxDepth int, allowConcat bool) ([]dagcbor.Value, error) {
	raw, err := readHexStdin()
	if err != nil {
		return nil, err
	}
	dec := &dagcbor.Decoder{MaxDepth: maxDepth}

	if !allowConcat {
		v, err := dec.Decode(raw)
		if err != nil {
			return nil, err
		}
		return []dagcbor.Value{v}, nil
	}

	var values []dagcbor.Value
	rest := raw
	for len(rest) > 0 {
		v, next, err := dec.DecodeAllowConcat(rest)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		rest = next
	}
	return values, nil
}

func readHexStdin() ([]byte, error) {
	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	raw, err := hex.DecodeString(strings.TrimSpace(string(text)))
	if err != nil {
		return nil, fmt.Errorf("decoding hex input: %w", err)
	}
	return raw, nil
}
