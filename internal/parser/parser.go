package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors"

	"github.com/mcncl/jsoncmp/internal/errors"
	"github.com/mcncl/jsoncmp/internal/models"
)

// Parse reads a single JSON document from reader into a models.Value. The
// decoder is consumed token by token, so the raw text is never buffered in
// full; only the resulting value tree is held in memory. Object member
// order is preserved as it appears in the document, and numbers keep their
// literal text.
func Parse(reader io.Reader) (models.Value, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, decodeError(err)
	}

	value, err := parseValue(dec, tok)
	if err != nil {
		return nil, err
	}

	// Anything but EOF after the first value means a second document or
	// garbage follows.
	if _, err := dec.Token(); !stderrors.Is(err, io.EOF) {
		if err != nil {
			return nil, decodeError(err)
		}
		return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrTrailingData)
	}

	return value, nil
}

// frame is a container under construction: an object collecting members
// (key holds the pending member key) or an array collecting elements.
type frame struct {
	object   models.Object
	array    models.Array
	key      string
	isObject bool
}

// parseValue builds the value starting at the token just read. Containers
// under construction live on an explicit frame stack, so nesting depth is
// bounded by the heap rather than the call stack; the decoder's token API
// imposes no depth limit of its own.
func parseValue(dec *json.Decoder, tok json.Token) (models.Value, error) {
	var stack []frame

	for {
		var completed models.Value

		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				stack = append(stack, frame{isObject: true, object: models.Object{}})
			case '[':
				stack = append(stack, frame{array: models.Array{}})
			case '}', ']':
				// The decoder only emits a closer for a container it saw
				// open, so the stack cannot be empty here.
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.isObject {
					completed = top.object
				} else {
					completed = top.array
				}
			}
		case nil:
			completed = models.Null{}
		case bool:
			completed = models.Bool(t)
		case json.Number:
			completed = models.Number(t)
		case string:
			completed = models.String(t)
		default:
			return nil, errors.NewParsingError(fmt.Sprintf("unexpected token %v", tok), errors.ErrInvalidJSON)
		}

		if completed != nil {
			if len(stack) == 0 {
				return completed, nil
			}
			top := &stack[len(stack)-1]
			if top.isObject {
				top.object = append(top.object, models.Member{Key: top.key, Value: completed})
			} else {
				top.array = append(top.array, completed)
			}
		}

		// Advance. Inside an object a value position is preceded by a
		// member key, which folds into the open frame here; the closing
		// brace may arrive in its place.
		top := &stack[len(stack)-1]
		if top.isObject {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, decodeError(err)
			}
			if d, ok := keyTok.(json.Delim); ok && d == '}' {
				tok = keyTok
				continue
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, errors.NewParsingError(fmt.Sprintf("object key is not a string: %v", keyTok), errors.ErrInvalidJSON)
			}
			top.key = key
		}

		var err error
		tok, err = dec.Token()
		if err != nil {
			return nil, decodeError(err)
		}
	}
}

// decodeError maps a json.Decoder failure to an AppError, keeping the byte
// offset when the decoder provides one.
func decodeError(err error) error {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d: %v", syntaxError.Offset, syntaxError),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	// An all-whitespace string reaches Decode as EOF, but catching it here
	// gives a clearer error.
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path. I/O failures (missing file,
// unreadable file) come back as input errors; malformed content comes back
// as a parsing error, so callers can tell the two apart.
func ParseFile(filePath string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrFileNotFound)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	value, err := Parse(file)
	if err != nil {
		// Tag parse failures with the file they came from.
		return nil, errors.NewParsingError(
			fmt.Sprintf("invalid JSON in file '%s'", filePath),
			err,
		)
	}
	return value, nil
}
