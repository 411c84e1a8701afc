package utils

import (
	"github.com/segmentio/ksuid"
)

func GenKSUID() string {
	return ksuid.New().String()
}
