package pointerflow

import "github.com/kataras/golog"

// logger is the package logger. Processors without Config.Logger log through
// their own clone of it.
var logger = golog.Child("[pointerflow]")
