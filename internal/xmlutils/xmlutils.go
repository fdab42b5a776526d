// Package xmlutils provides field extraction from Alma invoice export XML.
//
// Alma exports live in a single fixed namespace, but the field paths used
// throughout the application are written as plain relative paths
// ("vat_info/vat_amount", "invoice_line_list/invoice_line[line_type='DISCOUNT']/price").
// This package translates those paths into namespace-qualified XPath
// expressions and evaluates them against a document subtree.
package xmlutils

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	xmlpath "github.com/masterzen/xmlpath"
)

// AlmaNamespace is the single namespace used by Alma invoice export documents.
const AlmaNamespace = "http://com/exlibris/repository/acq/invoice/xmlbeans"

// nsPrefix is the internal prefix bound to AlmaNamespace in compiled queries.
const nsPrefix = "x"

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

var namespaces = []xmlpath.Namespace{
	{Prefix: nsPrefix, Uri: AlmaNamespace},
}

// predicatePattern matches the opening of a bracketed predicate whose
// left-hand side is an element name (not an attribute), so the name can
// be namespace-qualified. Quoted literals are left untouched.
var predicatePattern = regexp.MustCompile(`\[([^@])`)

// QualifyPath translates a relative field path into a namespace-qualified
// XPath expression. Every slash-separated segment and the left-hand
// identifier of a bracketed equality predicate is prefixed with the Alma
// namespace.
func QualifyPath(relPath string) string {
	segments := strings.Split(relPath, "/")
	qualified := nsPrefix + ":" + strings.Join(segments, "/"+nsPrefix+":")
	return predicatePattern.ReplaceAllString(qualified, "["+nsPrefix+":$1")
}

// Field evaluates a relative field path against a subtree and returns the
// first matched node's text. The second return value is false when no node
// matched or the matched text is empty; a missing field is a normal,
// expected outcome and never an error.
func Field(node *xmlpath.Node, relPath string) (string, bool) {
	if node == nil {
		return "", false
	}

	path, err := xmlpath.CompileWithNamespace(QualifyPath(relPath), namespaces)
	if err != nil {
		log.WithField("path", relPath).WithError(err).Warn("Failed to compile field path")
		return "", false
	}

	value, ok := path.String(node)
	if !ok || value == "" {
		return "", false
	}

	return value, true
}

// Nodes evaluates a relative field path against a subtree and returns all
// matched nodes in document order. Used for repeating elements such as
// invoice and fund lists.
func Nodes(node *xmlpath.Node, relPath string) []*xmlpath.Node {
	if node == nil {
		return nil
	}

	path, err := xmlpath.CompileWithNamespace(QualifyPath(relPath), namespaces)
	if err != nil {
		log.WithField("path", relPath).WithError(err).Warn("Failed to compile field path")
		return nil
	}

	var nodes []*xmlpath.Node
	iter := path.Iter(node)
	for iter.Next() {
		nodes = append(nodes, iter.Node())
	}

	return nodes
}

// Exists reports whether a relative field path matches at least one node.
func Exists(node *xmlpath.Node, relPath string) bool {
	return len(Nodes(node, relPath)) > 0
}

// Parse parses an XML document from a reader and returns its root node.
func Parse(r io.Reader) (*xmlpath.Node, error) {
	root, err := xmlpath.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// LoadXMLFile loads an XML file and returns the XML root node
func LoadXMLFile(xmlFilePath string) (*xmlpath.Node, error) {
	file, err := os.Open(xmlFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return Parse(file)
}
