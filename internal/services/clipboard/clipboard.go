// Package clipboard provides access to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Reader returns the current textual clipboard content.
type Reader interface {
	Read() (string, error)
}

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	Copier
	Reader
}

// Service implements Clipboard using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a Clipboard service implementation.
func NewService() *Service {
	return &Service{}
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Read returns the system clipboard content.
func (service *Service) Read() (string, error) {
	return clipboard.ReadAll()
}

// Available reports whether a clipboard utility was found on this system.
func (service *Service) Available() bool {
	return !clipboard.Unsupported
}

var _ Clipboard = (*Service)(nil)
