// Copyright 2026 The wktbench Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wktbench/wktbench/logging"
)

// Formats accepted by GetFormatter.
const (
	FormatText       = "text"
	FormatJSON       = "json"
	FormatJSONPretty = "json-pretty"
)

func GetLevel(level string) (logging.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logging.Debug, nil
	case "", "info":
		return logging.Info, nil
	case "warn":
		return logging.Warn, nil
	case "error":
		return logging.Error, nil
	default:
		return logging.Debug, fmt.Errorf("invalid log level: %v", level)
	}
}

func GetFormatter(format string) logrus.Formatter {
	switch format {
	case FormatText:
		return &textFormatter{}
	case FormatJSONPretty:
		return &logrus.JSONFormatter{PrettyPrint: true}
	default:
		return &logrus.JSONFormatter{}
	}
}

// NewLogger returns a standard logger writing to w with the given level and
// format.
func NewLogger(w io.Writer, level, format string) (*logging.StandardLogger, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, err
	}
	logger := logging.New()
	logger.SetOutput(w)
	logger.SetFormatter(GetFormatter(format))
	logger.SetLevel(lvl)
	return logger, nil
}

// textFormatter writes one line per entry: the level, the message, then the
// fields in key order. Diagnostic lines interleave with benchmark results on
// the same stream, so entries never span lines.
type textFormatter struct{}

func (*textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b := new(bytes.Buffer)

	fmt.Fprintf(b, "[%s] %s", strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		var val string
		switch v := e.Data[k].(type) {
		case string:
			val = v
			if strings.ContainsAny(v, " \t\n=\"") {
				val = fmt.Sprintf("%q", v)
			}
		case error:
			val = fmt.Sprintf("%q", v.Error())
		default:
			bs, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			val = string(bs)
		}
		fmt.Fprintf(b, " %s=%s", k, val)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}
