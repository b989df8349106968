package onnx

import (
	"fmt"

	"github.com/klauspost/cpuid/v2"
	"github.com/knights-analytics/hugot"
	"go.uber.org/zap"
)

func newSession(opts Options, log *zap.Logger) (*hugot.Session, error) {
	switch opts.Backend {
	case "", BackendGo:
		// The pure Go backend's speed depends on the vector extensions available.
		log.Debug("creating hugot session",
			zap.String("backend", BackendGo),
			zap.String("cpu", cpuid.CPU.BrandName),
			zap.Bool("avx2", cpuid.CPU.Supports(cpuid.AVX2)),
			zap.Int("logical_cores", cpuid.CPU.LogicalCores),
		)
		session, err := hugot.NewGoSession()
		if err != nil {
			return nil, fmt.Errorf("failed to create go session: %w", err)
		}
		return session, nil
	case BackendORT:
		log.Debug("creating hugot session",
			zap.String("backend", BackendORT),
			zap.String("library", opts.ORTLibrary),
		)
		return newORTSession(opts.ORTLibrary)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
