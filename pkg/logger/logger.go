package logger

import (
	"log"
	"os"
)

var std = log.New(os.Stdout, "", log.LstdFlags)

// Init initializes the plain bootstrap logger. Safe to call before
// InitStructured; used during startup before config is loaded.
func Init() {
	std = log.New(os.Stdout, "", log.LstdFlags)
}

// Info logs an info-level message (printf style)
func Info(format string, args ...interface{}) {
	std.Printf("[INFO] "+format, args...)
}

// Error logs an error-level message (printf style)
func Error(format string, args ...interface{}) {
	std.Printf("[ERROR] "+format, args...)
}
