package scenario

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaSource string

// SchemaError is a suite document that does not conform to the suite schema.
type SchemaError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *SchemaError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateSchema checks a suite document against the suite schema.
// filename is used only for error positions. All violations are returned,
// in the order CUE reports them.
func ValidateSchema(filename string, data []byte) []error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// The schema is embedded; failing to compile it is a build defect.
		panic(fmt.Sprintf("scenario: invalid embedded schema: %v", err))
	}
	suiteDef := schema.LookupPath(cue.ParsePath("#Suite"))

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return []error{convertCUEError(err)}
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return []error{convertCUEError(err)}
	}

	unified := suiteDef.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var out []error
		for _, e := range errors.Errors(err) {
			out = append(out, convertCUEError(e))
		}
		return out
	}
	return nil
}

// convertCUEError extracts position info from a single CUE error.
func convertCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]

	path := "suite"
	if p := first.Path(); len(p) > 0 {
		path = strings.Join(p, ".")
	}

	format, args := first.Msg()
	se := &SchemaError{Path: path, Message: fmt.Sprintf(format, args...)}
	// Prefer a position inside the suite document over one in the schema.
	for _, pos := range errors.Positions(first) {
		if pos.Filename() != "schema.cue" {
			se.Pos = pos
			break
		}
	}
	return se
}
