//go:build ORT

package onnx

import (
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
)

func newORTSession(library string) (*hugot.Session, error) {
	var opts []options.WithOption
	if library != "" {
		opts = append(opts, options.WithOnnxLibraryPath(library))
	}

	session, err := hugot.NewORTSession(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create onnxruntime session: %w", err)
	}
	return session, nil
}
