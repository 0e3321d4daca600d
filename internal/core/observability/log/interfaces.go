package log

import (
	"context"
	"time"
)

// Log is the structured logging surface every kestrel package depends on.
type Log interface {
	Log(level Level, msg string, fields ...Field)

	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	With(fields ...Field) Log
	WithContext(ctx context.Context) Log

	SetLevel(level Level)
	GetLevel() Level
}

// Level is the logging verbosity threshold.
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

// Field is a single structured-log key/value pair.
type Field struct {
	Key   string
	Type  FieldType
	Value any
}

// FieldType selects how Value should be interpreted and serialized.
type FieldType uint8

const (
	AnyType FieldType = iota
	BoolType
	DurationType
	IntType
	Int64Type
	StringType
	Uint16Type
	Uint64Type
	ErrorType
)

func Any(key string, val any) Field { return Field{Key: key, Type: AnyType, Value: val} }

func Bool(key string, val bool) Field { return Field{Key: key, Type: BoolType, Value: val} }

func Duration(key string, val time.Duration) Field {
	return Field{Key: key, Type: DurationType, Value: val}
}

func Int(key string, val int) Field { return Field{Key: key, Type: IntType, Value: val} }

func Int64(key string, val int64) Field { return Field{Key: key, Type: Int64Type, Value: val} }

func String(key string, val string) Field { return Field{Key: key, Type: StringType, Value: val} }

func Uint16(key string, val uint16) Field { return Field{Key: key, Type: Uint16Type, Value: val} }

func Uint64(key string, val uint64) Field { return Field{Key: key, Type: Uint64Type, Value: val} }

// Error wraps err under the conventional "error" key.
func Error(val error) Field { return Field{Key: "error", Type: ErrorType, Value: val} }
