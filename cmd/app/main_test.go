package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	debug := initLogger(true)
	assert.Equal(t, logrus.DebugLevel, debug.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, debug.Formatter)

	normal := initLogger(false)
	assert.Equal(t, logrus.InfoLevel, normal.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, normal.Formatter)
}
