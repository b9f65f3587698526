package io

import (
	log "github.com/hashicorp/go-hclog"
)

// LoggerSink writes every committed change to an hclog logger. Useful for
// debugging and as a fallback audit trail.
type LoggerSink struct {
	logger log.Logger
}

func NewLoggerSink(logger log.Logger) *LoggerSink {
	return &LoggerSink{logger: logger.Named("ChangeLog")}
}

func (s *LoggerSink) ProcessObject(obj MemoryStorableObject) error {
	s.logger.Debug("committed", "type", obj.ObjType(), "id", obj.ObjId())
	return nil
}

func (s *LoggerSink) ProcessObjectDelete(obj MemoryStorableObject) error {
	s.logger.Debug("deleted", "type", obj.ObjType(), "id", obj.ObjId())
	return nil
}

func (s *LoggerSink) Name() string {
	return "logger"
}
