package models

import (
	"strings"
	"time"
)

type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete}

// ParseMethod normalizes s and reports whether it names a supported method.
func ParseMethod(s string) (Method, bool) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, true
		}
	}
	return m, false
}

// Endpoint is the persisted record. Its JSON shape is the storage slot format.
type Endpoint struct {
	ID          string    `json:"id" yaml:"id"`
	EndpointID  string    `json:"endpointId" yaml:"endpointId"`
	Method      Method    `json:"method" yaml:"method"`
	Description string    `json:"description" yaml:"description"`
	URL         string    `json:"url" yaml:"url"`
	Creator     string    `json:"creator" yaml:"creator"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}
