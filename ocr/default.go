package ocr

import "context"

var defaultEngine Engine = &noopEngine{}

// DefaultEngine returns the library's default OCR engine. Importing the
// tesseract subpackage installs the Tesseract engine; otherwise the default
// engine reports ErrEngineUnavailable.
func DefaultEngine() Engine {
	return defaultEngine
}

// SetDefaultEngine sets the library's default OCR engine.
func SetDefaultEngine(engine Engine) {
	defaultEngine = engine
}

type noopEngine struct{}

func (*noopEngine) Name() string { return "noop" }

func (*noopEngine) Recognize(context.Context, Input) (Result, error) {
	return Result{}, ErrEngineUnavailable
}
