// Package logger provides structured logging for restkit using zerolog.
//
// The client facade logs each attempt, retry, and terminal failure through a
// component-scoped Logger. Hosting services can inject their own instance or
// rely on the quiet default.
//
//	log := logger.NewDefault("orders-api")
//	log.Info("request completed", logger.Fields(logger.FieldStatus, 200))
package logger
