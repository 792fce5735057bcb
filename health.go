package elastickit

import (
	"strings"

	"github.com/pkg/errors"
)

// HealthStatus is the health colour reported by the cluster
type HealthStatus string

const (
	StatusGreen  HealthStatus = "green"
	StatusYellow HealthStatus = "yellow"
	StatusRed    HealthStatus = "red"
)

// ParseHealthStatus parses a health colour, case-insensitive
func ParseHealthStatus(value string) (HealthStatus, error) {
	switch status := HealthStatus(strings.ToLower(strings.TrimSpace(value))); status {
	case StatusGreen, StatusYellow, StatusRed:
		return status, nil
	default:
		return "", errors.Errorf("unknown health status %q", value)
	}
}

func (s HealthStatus) String() string {
	return string(s)
}
