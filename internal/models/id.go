package models

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	EndpointIDPrefix = "ep"
	TestCaseIDPrefix = "tc"
)

func NewID(prefix string) string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader)
	return fmt.Sprintf("%s_%s", prefix, id.String())
}
