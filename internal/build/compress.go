package build

import (
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation"
	"git.home.luguber.info/inful/bundlebuilder/internal/foundation/errors"
)

// CompressOption selects bundle compression.
type CompressOption string

const (
	CompressUncompressed CompressOption = "Uncompressed"
	CompressLZ4          CompressOption = "LZ4"
	CompressLZMA         CompressOption = "LZMA"
)

var compressNormalizer = foundation.NewNormalizer("compress option", map[string]CompressOption{
	"Uncompressed": CompressUncompressed,
	"None":         CompressUncompressed,
	"LZ4":          CompressLZ4,
	"LZMA":         CompressLZMA,
}, CompressLZ4)

// ParseCompressOption normalizes a user supplied compression name. Empty input yields LZ4.
func ParseCompressOption(raw string) (CompressOption, error) {
	c, err := compressNormalizer.Normalize(raw)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryConfig, "unknown compress option").
			Fatal().
			WithContext("compress_option", raw).
			Build()
	}
	return c, nil
}

// Validate reports whether c is a known compression option.
func (c CompressOption) Validate() error {
	switch c {
	case CompressUncompressed, CompressLZ4, CompressLZMA:
		return nil
	default:
		return unsupportedCompressionError(c, "any")
	}
}

func unsupportedCompressionError(c CompressOption, pipeline string) error {
	return errors.ConfigError("unsupported compress option").
		WithContext("compress_option", string(c)).
		WithContext("pipeline", pipeline).
		Build()
}
