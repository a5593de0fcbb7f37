// Package convert describes a single model conversion request and the
// converters that can carry it out.
//
// Nothing in this package interprets model files or quantization modes. A
// Request is passed through exactly as the caller supplied it.
package convert

import (
	"context"
	"fmt"
	"io"
)

// DefaultQuant is the quantization label used when none is given.
const DefaultQuant = "int8"

// Request names the source artifact, the desired output artifact and a
// free-form quantization label.
type Request struct {
	Src   string `json:"src"`
	Out   string `json:"out"`
	Quant string `json:"quant"`
}

// Result is the outcome of one conversion.
type Result struct {
	Src   string `json:"src"`
	Out   string `json:"out"`
	Quant string `json:"quant"`

	// Artifact is the location of the produced artifact. Empty when nothing
	// was produced.
	Artifact string `json:"artifact,omitempty"`
	// Stub is set when no conversion took place.
	Stub bool `json:"stub"`
	// Converter names the converter that handled the request.
	Converter string `json:"converter"`
	// Output is whatever the external tool wrote.
	Output string `json:"output,omitempty"`
}

// Converter turns a Request into a Result.
type Converter interface {
	Name() string
	Convert(ctx context.Context, req Request) (Result, error)
}

// Describe returns the human-readable line announcing a conversion.
func Describe(req Request) string {
	return fmt.Sprintf("Converting %s -> %s with quantization %s", req.Src, req.Out, req.Quant)
}

// Report writes the human-readable summary of res to w.
func Report(w io.Writer, res Result) error {
	req := Request{Src: res.Src, Out: res.Out, Quant: res.Quant}
	if _, err := fmt.Fprintln(w, Describe(req)); err != nil {
		return err
	}
	if res.Output != "" {
		if _, err := io.WriteString(w, res.Output); err != nil {
			return err
		}
		if res.Output[len(res.Output)-1] != '\n' {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "Done (%s)\n", res.Converter)
	return err
}

func resultFor(req Request, converter string) Result {
	return Result{
		Src:       req.Src,
		Out:       req.Out,
		Quant:     req.Quant,
		Converter: converter,
	}
}
