// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/holiman/uint256"
	luxlog "github.com/luxfi/log"
	"github.com/luxfi/tge/pkg/constants"
)

var Logger *UserLog

type UserLog struct {
	log    luxlog.Logger
	writer io.Writer
	color  bool
}

// NewUserLog replaces the global user facing logger
func NewUserLog(log luxlog.Logger, userwriter io.Writer) {
	Logger = &UserLog{
		log:    log,
		writer: userwriter,
		color:  IsTerminal(userwriter),
	}
}

// Writer returns the user output destination
func (ul *UserLog) Writer() io.Writer {
	return ul.writer
}

// PrintToUser prints msg directly to the user writer (command output)
// Does NOT log to avoid duplication - logs should go to the log file separately
func (ul *UserLog) PrintToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
}

// Info logs an info message
func (ul *UserLog) Info(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	ul.log.Info(formattedMsg)
}

// PrintLineSeparator prints a line separator as wide as the terminal
func (ul *UserLog) PrintLineSeparator(msg ...string) {
	separator := strings.Repeat("=", TerminalWidth(ul.writer))
	if len(msg) > 0 && msg[0] != "" {
		separator = msg[0]
	}
	_, _ = fmt.Fprintln(ul.writer, separator)
}

// Error logs an error message
func (ul *UserLog) Error(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	ul.log.Error(formattedMsg)
}

// RedXToUser prints a red X error message to the user
func (ul *UserLog) RedXToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, paint(ul.color, ansiRed, "✗")+" "+formattedMsg)
	ul.log.Error(formattedMsg)
}

// GreenCheckmarkToUser prints a green checkmark success message to the user
func (ul *UserLog) GreenCheckmarkToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, paint(ul.color, ansiGreen, "✓")+" "+formattedMsg)
	ul.log.Info(formattedMsg)
}

// PrintError prints a visible error message with ERROR prefix to the user,
// followed by a hint derived from the error kind
func (ul *UserLog) PrintError(err error) {
	errorMsg := fmt.Sprintf("\nERROR: %s", err)
	if hint := ErrorHint(err); hint != "" {
		errorMsg += fmt.Sprintf("\n(%s)", hint)
	}
	_, _ = fmt.Fprintln(ul.writer, errorMsg)
	ul.log.Error(err.Error())
}

// ErrorHint tells the user whether resubmitting may help
func ErrorHint(err error) string {
	switch kind := constants.KindOf(err); kind {
	case constants.WindowError:
		return "WindowError: outside the allowed time window, retry later"
	case constants.CapacityError:
		return "CapacityError: retry with a smaller amount"
	case constants.UnknownError:
		return ""
	default:
		return fmt.Sprintf("%s: not retryable with the same arguments", kind)
	}
}

func ConvertToStringWithThousandSeparator(input uint64) string {
	p := message.NewPrinter(language.English)
	s := p.Sprintf("%d", input)
	return strings.ReplaceAll(s, ",", "_")
}

// amountChunk is the largest power of 1000 below 2^64
const amountChunk = 1_000_000_000_000_000_000

// FormatAmount renders a 256-bit amount with thousand separators. Amounts above
// uint64 are printed in chunks of 18 digits; each chunk is offset by amountChunk
// so the printer keeps its leading zeros, and the extra leading "1_" is dropped.
func FormatAmount(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	var (
		rest   = v.Clone()
		base   = uint256.NewInt(amountChunk)
		chunks []string
	)
	for !rest.IsUint64() {
		q, low := new(uint256.Int), new(uint256.Int)
		q.DivMod(rest, base, low)
		grouped := ConvertToStringWithThousandSeparator(amountChunk + low.Uint64())
		chunks = append(chunks, strings.TrimPrefix(grouped, "1_"))
		rest = q
	}
	out := ConvertToStringWithThousandSeparator(rest.Uint64())
	for i := len(chunks) - 1; i >= 0; i-- {
		out += "_" + chunks[i]
	}
	return out
}
