package common

import (
	"fmt"
	"strings"
)

type LogLevel int32

const (
	DEBUG_INFO_DETAIL LogLevel = 1
	DEBUG_INFO        LogLevel = 2
	RDB_OP_FUNC_CALL  LogLevel = 4
	DEBUGGING         LogLevel = 8
	INFO              LogLevel = 16
	WARN              LogLevel = 32
	ERROR             LogLevel = 64
	FATAL             LogLevel = 128
)

var LogLevelSetting LogLevel = WARN | ERROR | FATAL

func ShPrintf(logLevel LogLevel, fmtStl string, a ...interface{}) {
	if logLevel&LogLevelSetting > 0 {
		fmt.Printf(fmtStl, a...)
	}
}

// ParseLogLevel converts a config level name to the mask stored in LogLevelSetting
func ParseLogLevel(name string) (LogLevel, error) {
	switch strings.ToLower(name) {
	case "debug":
		return DEBUG_INFO | RDB_OP_FUNC_CALL | DEBUGGING | INFO | WARN | ERROR | FATAL, nil
	case "info":
		return INFO | WARN | ERROR | FATAL, nil
	case "", "warn":
		return WARN | ERROR | FATAL, nil
	case "error":
		return ERROR | FATAL, nil
	}
	return 0, fmt.Errorf("invalid log.level: %q", name)
}

func SetLogLevel(name string) error {
	level, err := ParseLogLevel(name)
	if err != nil {
		return err
	}
	LogLevelSetting = level
	return nil
}
