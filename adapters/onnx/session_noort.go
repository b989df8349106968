//go:build !ORT

package onnx

import (
	"fmt"

	"github.com/knights-analytics/hugot"
)

func newORTSession(string) (*hugot.Session, error) {
	return nil, fmt.Errorf("%w: rebuild with -tags ORT to use %q", ErrBackendUnavailable, BackendORT)
}
