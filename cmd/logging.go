package cmd

import (
	"fmt"
	"io"

	"github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/consumer"
	"github.com/echocat/slf4g/native/facade/value"
	"github.com/echocat/slf4g/native/formatter"
)

const (
	defaultLogLevel  = "warn"
	defaultLogFormat = "text"
	defaultLogColor  = "auto"
)

type logOptions struct {
	level  string
	format string
	color  string
}

// apply points the native slf4g provider at out and configures it.
func (o logOptions) apply(out io.Writer) error {
	consumer.Default = consumer.NewWriter(out)

	lv := value.NewProvider(native.DefaultProvider)
	lv.Consumer.Formatter.Codec = value.MappingFormatterCodec{
		"text": formatter.NewText(),
		"json": formatter.NewJson(),
	}

	if err := lv.Level.Set(o.level); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	if err := lv.Consumer.Formatter.Set(o.format); err != nil {
		return fmt.Errorf("--log-format: %w", err)
	}
	if err := lv.Consumer.Formatter.ColorMode.Set(o.color); err != nil {
		return fmt.Errorf("--log-color: %w", err)
	}

	return nil
}
