// Filter Editor - side-by-side image filtering with OpenCV
// License: MIT

package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"image-filter-editor/internal/gui"
	"image-filter-editor/internal/preview"
)

const (
	AppName    = "Filter Editor"
	AppID      = "com.imagefilter.editor"
	AppVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	samplesDir := flag.String("samples", ".", "Directory containing image1.jpg ... image4.jpg")
	previewSize := flag.Int("preview", preview.DefaultMaxDim, "Maximum preview width/height in pixels")
	flag.Parse()

	logger := initLogger(*debugMode)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": *debugMode,
		"samples":    *samplesDir,
	}).Info("Starting " + AppName)

	opts := gui.Options{
		SamplesDir:  *samplesDir,
		PreviewSize: *previewSize,
		Debug:       *debugMode,
	}

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.DocumentIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	editor, err := gui.NewApplication(myApp, logger, opts)
	if err != nil {
		logger.WithError(err).Error("Failed to start")
		os.Exit(2)
	}
	editor.ShowAndRun()

	logger.Info("Application shutting down gracefully")
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
