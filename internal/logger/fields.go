package logger

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCandidate is the structured log field key for the candidate id.
	FieldCandidate = "candidate_id"
	// FieldDocument is the structured log field key for the analyzed document.
	FieldDocument = "document"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CandidateFields describes the candidate and document being screened.
// A non-positive id is omitted.
func CandidateFields(id int64, document string) []zap.Field {
	candidate := ""
	if id > 0 {
		candidate = strconv.FormatInt(id, 10)
	}

	return StringFields(
		StringField{Key: FieldCandidate, Value: candidate},
		StringField{Key: FieldDocument, Value: document},
	)
}

// WithCandidate attaches CandidateFields to logger.
func WithCandidate(logger *zap.Logger, id int64, document string) *zap.Logger {
	return WithFields(logger, CandidateFields(id, document)...)
}
