// Package agent routes natural-language queries to campus operations. Deciding
// which operation a query means is delegated to a Classifier; this package only
// maps the decision onto the services.
package agent

import "context"

// NoOperation is what a classifier returns for queries no operation covers
const NoOperation = "none"

// Intent is a classifier's decision: the operation to run and its string arguments
type Intent struct {
	Operation string            `json:"operation"`
	Args      map[string]string `json:"args,omitempty"`
}

// Arg returns the named argument or ""
func (i Intent) Arg(name string) string {
	if i.Args == nil {
		return ""
	}
	return i.Args[name]
}

// OperationSpec describes an operation to the classifier
type OperationSpec struct {
	Name        string
	Description string
	Args        []string
}

// Classifier maps a query onto one of the offered operations
type Classifier interface {
	Classify(ctx context.Context, query string, operations []OperationSpec) (Intent, error)
}
