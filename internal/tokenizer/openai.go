package tokenizer

import (
	"errors"

	"github.com/pkoukk/tiktoken-go"
)

var errMissingEncoding = errors.New("tiktoken encoding not initialized")

// tiktokenCounter counts summary tokens with one tiktoken encoding.
type tiktokenCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// Name reports the model or encoding the counter was resolved to.
func (counter tiktokenCounter) Name() string {
	return counter.name
}

// CountString encodes input without special-token handling and returns the number of tokens.
func (counter tiktokenCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errMissingEncoding
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}
