package incident

import (
	"bufio"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/specialistvlad/incidentfilter/internal/ctxlog"
	"github.com/specialistvlad/incidentfilter/internal/fsutil"
	"golang.org/x/net/html/charset"
)

// ErrSourceNotFound is returned by Load when the source file does not exist.
var ErrSourceNotFound = errors.New("source file not found")

// ParseError reports a source document that is not well-formed XML.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed XML in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads and parses the document at path and returns its root element.
// The file is closed before Load returns.
func Load(ctx context.Context, path string) (*Node, error) {
	logger := ctxlog.FromContext(ctx).With("source", path)
	logger.Debug("Loading source document.")

	f, err := fsutil.OpenRegular(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to open source %s: %w", path, err)
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &ParseError{Path: path, Line: syntaxErr.Line, Err: err}
		}
		return nil, fmt.Errorf("failed to read source %s: %w", path, err)
	}

	logger.Debug("Source document loaded.", "root", root.Tag, "children", len(root.Children))
	return root, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse builds a tree from an XML stream. The stream must hold exactly one
// root element; anything other than whitespace, comments or processing
// instructions outside of it is a syntax error. A leading UTF-8 byte-order
// mark is ignored. Element names are matched by local name only.
func Parse(r io.Reader) (*Node, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	dec := xml.NewDecoder(br)
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		stack []*Node
		first = true
	)
	for ; ; first = false {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if !first && strings.EqualFold(t.Target, "xml") {
				return nil, syntaxError(dec, "XML declaration not at start of document")
			}
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, syntaxError(dec, "junk after document element")
			}
			if name, dup := duplicateAttr(t.Attr); dup {
				return nil, syntaxError(dec, fmt.Sprintf("duplicate attribute %q", name))
			}
			n := &Node{Tag: t.Name.Local}
			if len(stack) == 0 {
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			// The decoder rejects unbalanced end tags in strict mode.
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, syntaxError(dec, "text outside of document element")
				}
				continue
			}
			top := stack[len(stack)-1]
			if len(top.Children) == 0 {
				top.Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, syntaxError(dec, "no element found")
	}
	return root, nil
}

func duplicateAttr(attrs []xml.Attr) (string, bool) {
	seen := make(map[xml.Name]struct{}, len(attrs))
	for _, a := range attrs {
		if _, ok := seen[a.Name]; ok {
			return a.Name.Local, true
		}
		seen[a.Name] = struct{}{}
	}
	return "", false
}

func syntaxError(dec *xml.Decoder, msg string) error {
	line, _ := dec.InputPos()
	return &xml.SyntaxError{Msg: msg, Line: line}
}
