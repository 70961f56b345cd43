package chart

import (
	"github.com/rshade/fleetkpi/internal/dashboard"
)

// RenderSnapshot writes every figure of s to dir, one PNG per figure.
func RenderSnapshot(dir string, s *dashboard.Snapshot, size Size) ([]string, error) {
	return RenderAll(dir, s.Figures(), size)
}
