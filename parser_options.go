/*
Copyright © 2025 Acronis International GmbH.

Released under MIT license.
*/

package foamdict

// ParserOption is an interface for functional options that can be passed to the NewParser constructor.
type ParserOption interface {
	apply(*parserOptions)
}

type parserOptions struct {
	fileName        string
	allowDirectives bool
}

type fileNameParserOption string

func (o fileNameParserOption) apply(opts *parserOptions) {
	opts.fileName = string(o)
}

// WithFileName allows specifying the file name that is reported in positions of syntax errors.
func WithFileName(name string) ParserOption {
	return fileNameParserOption(name)
}

type allowDirectivesParserOption bool

func (o allowDirectivesParserOption) apply(opts *parserOptions) {
	opts.allowDirectives = bool(o)
}

// WithDirectives allows specifying whether "#name args..." lines (e.g. #include "file") are accepted.
// Directives are kept as opaque entries and are never executed.
func WithDirectives(b bool) ParserOption {
	return allowDirectivesParserOption(b)
}

func makeParserOptions(opts ...ParserOption) parserOptions {
	var options parserOptions
	for _, opt := range opts {
		opt.apply(&options)
	}
	return options
}

// SerializerOption is an interface for functional options that can be passed to Serialize, Write and WriteFile.
type SerializerOption interface {
	apply(*serializerOptions)
}

type serializerOptions struct {
	indent       string
	keywordWidth int
	banner       string
}

const (
	defaultIndent       = "    "
	defaultKeywordWidth = 16
)

type indentSerializerOption string

func (o indentSerializerOption) apply(opts *serializerOptions) {
	opts.indent = string(o)
}

// WithIndent allows specifying the indentation of nested dictionaries. Default is four spaces.
func WithIndent(indent string) SerializerOption {
	return indentSerializerOption(indent)
}

type keywordWidthSerializerOption int

func (o keywordWidthSerializerOption) apply(opts *serializerOptions) {
	opts.keywordWidth = int(o)
}

// WithKeywordWidth allows specifying the column width that keywords are padded to. Default is 16.
func WithKeywordWidth(width int) SerializerOption {
	return keywordWidthSerializerOption(width)
}

type bannerSerializerOption string

func (o bannerSerializerOption) apply(opts *serializerOptions) {
	opts.banner = string(o)
}

// WithBanner allows specifying a comment that is written before the first entry.
func WithBanner(text string) SerializerOption {
	return bannerSerializerOption(text)
}

func makeSerializerOptions(opts ...SerializerOption) serializerOptions {
	options := serializerOptions{
		indent:       defaultIndent,
		keywordWidth: defaultKeywordWidth,
	}
	for _, opt := range opts {
		opt.apply(&options)
	}
	return options
}
