package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	json "github.com/goccy/go-json"

	"tax-engine/internal/model"
)

// printQuery evaluates a JSONPath expression such as
// $.calculation_result.total_tax against the JSON form of v and prints the
// match. Strings print bare so amounts can be piped into other tools.
func printQuery(w io.Writer, v any, expr string) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	expr = strings.TrimSpace(expr)
	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return &model.OpError{Op: "cli.query", Kind: model.KindInvalidInput, Err: fmt.Errorf("%s: %w", expr, err)}
	}

	if s, ok := val.(string); ok {
		fmt.Fprintln(w, s)
		return nil
	}
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(b))
	return nil
}
