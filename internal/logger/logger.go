package logger

import (
	"fmt"
	"log"
	"os"
)

var (
	// Debug flag to control debug logging
	debugEnabled = false
	// The logger instances
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
)

// Init initializes the logger
func Init(debug bool) {
	debugEnabled = debug

	// Create loggers with appropriate prefixes
	debugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	infoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	warnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime)
	errorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	if debugEnabled {
		Debug("Debug logging enabled")
	}
}

// ensure lets package-level helpers work even when Init was never called,
// which is the common case in tests.
func ensure() {
	if infoLogger == nil {
		Init(false)
	}
}

// Debug logs a debug message if debug mode is enabled
func Debug(format string, v ...interface{}) {
	ensure()
	if debugEnabled {
		debugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	ensure()
	infoLogger.Output(2, fmt.Sprintf(format, v...))
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	ensure()
	warnLogger.Output(2, fmt.Sprintf(format, v...))
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	ensure()
	errorLogger.Output(2, fmt.Sprintf(format, v...))
}

// IsDebugEnabled returns whether debug logging is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// AI-prefixed helpers for provider and generation logging.

// AIDebug logs a debug message for AI provider interactions
func AIDebug(format string, v ...interface{}) {
	Debug("[AI] "+format, v...)
}

// AIInfo logs an info message for AI provider interactions
func AIInfo(format string, v ...interface{}) {
	Info("[AI] "+format, v...)
}

// AIWarn logs a warning for AI provider interactions
func AIWarn(format string, v ...interface{}) {
	Warn("[AI] "+format, v...)
}

// AIError logs an error for AI provider interactions
func AIError(format string, v ...interface{}) {
	Error("[AI] "+format, v...)
}

// RAG-prefixed helpers for ingestion and retrieval logging.

// RAGDebug logs a debug message for document ingestion and retrieval
func RAGDebug(format string, v ...interface{}) {
	Debug("[RAG] "+format, v...)
}

// RAGInfo logs an info message for document ingestion and retrieval
func RAGInfo(format string, v ...interface{}) {
	Info("[RAG] "+format, v...)
}

// RAGWarn logs a warning for document ingestion and retrieval
func RAGWarn(format string, v ...interface{}) {
	Warn("[RAG] "+format, v...)
}

// RAGError logs an error for document ingestion and retrieval
func RAGError(format string, v ...interface{}) {
	Error("[RAG] "+format, v...)
}
