package config

// Option describes one recognized configuration key.
type Option struct {
	Name  string
	Kind  Kind
	Usage string

	// Flag is the command-line default. An unset Flag means the flag
	// declares no default and the default record supplies the value.
	Flag Value

	// Default is the built-in default record value.
	Default Value

	// Choices is the closed set of accepted values for enum options.
	Choices []string
}

var colorChoices = []string{"red", "blue", "green", "none"}

var options = []Option{
	{
		Name: "outdir", Kind: KindString,
		Usage:   "location for output ePub files",
		Flag:    StringValue("./"),
		Default: StringValue("./paged_epubs"),
	},
	{
		Name: "match", Kind: KindBool,
		Usage:   "if pagination exists, match it",
		Flag:    BoolValue(true),
		Default: BoolValue(false),
	},
	{
		Name: "genplist", Kind: KindBool,
		Usage:   "generate the navigation page list and page links for page numbers",
		Flag:    BoolValue(true),
		Default: BoolValue(true),
	},
	{
		Name: "pgwords", Kind: KindInt,
		Usage:   "define words per page; if 0, use pages",
		Flag:    IntValue(300),
		Default: IntValue(300),
	},
	{
		Name: "pages", Kind: KindInt,
		Usage:   "if = 0 use pgwords; else pgwords=(wordcount/pages)",
		Flag:    IntValue(0),
		Default: IntValue(0),
	},
	{
		Name: "footer", Kind: KindBool,
		Usage:   "generate and insert page footers into the ePub text",
		Flag:    BoolValue(false),
		Default: BoolValue(false),
	},
	{
		Name: "ft_align", Kind: KindEnum,
		Usage:   "alignment of the page footer",
		Flag:    EnumValue("right"),
		Default: EnumValue("right"),
		Choices: []string{"right", "left", "center"},
	},
	{
		Name: "ft_color", Kind: KindEnum,
		Usage:   "html color for the inserted page footer",
		Flag:    EnumValue("none"),
		Default: EnumValue("red"),
		Choices: colorChoices,
	},
	{
		Name: "ft_bkt", Kind: KindEnum,
		Usage:   "character to use to bracket page number",
		Flag:    EnumValue("<"),
		Default: EnumValue("<"),
		Choices: []string{"<", "(", "none"},
	},
	{
		Name: "ft_fntsz", Kind: KindString,
		Usage:   "font size as percentage of book font for the footer",
		Flag:    StringValue("75%"),
		Default: StringValue("75%"),
	},
	{
		Name: "ft_pgtot", Kind: KindBool,
		Usage:   "include total pages in the footer",
		Flag:    BoolValue(false),
		Default: BoolValue(true),
	},
	{
		Name: "superscript", Kind: KindBool,
		Usage:   "generate superscripted page numbers",
		Flag:    BoolValue(false),
		Default: BoolValue(true),
	},
	{
		Name: "super_color", Kind: KindEnum,
		Usage:   "html color for the inserted superscript page number",
		Default: EnumValue("red"),
		Choices: colorChoices,
	},
	{
		Name: "super_fntsz", Kind: KindString,
		Usage:   "font size as percentage of book font for the superscript",
		Flag:    StringValue("60%"),
		Default: StringValue("60%"),
	},
	{
		Name: "super_total", Kind: KindBool,
		Usage:   "include total pages in the superscript",
		Flag:    BoolValue(false),
		Default: BoolValue(true),
	},
	{
		Name: "chap_pgtot", Kind: KindBool,
		Usage:   "include chapter page and total in the footer and/or superscript",
		Flag:    BoolValue(true),
		Default: BoolValue(true),
	},
	{
		Name: "chap_bkt", Kind: KindString,
		Usage:   "'<', '(' or nothing; character to use to bracket chapter page number",
		Flag:    StringValue(""),
		Default: StringValue(""),
	},
	{
		Name: "ebookconvert", Kind: KindString,
		Usage:   "location of ebook conversion executable",
		Flag:    StringValue("none"),
		Default: StringValue(""),
	},
	{
		Name: "epubcheck", Kind: KindString,
		Usage:   "location of epubcheck executable",
		Flag:    StringValue("none"),
		Default: StringValue("epubcheck"),
	},
	{
		Name: "chk_orig", Kind: KindBool,
		Usage:   "run epubcheck on original file",
		Flag:    BoolValue(true),
		Default: BoolValue(true),
	},
	{
		Name: "DEBUG", Kind: KindBool,
		Usage:   "print additional debug information to the log file",
		Flag:    BoolValue(false),
		Default: BoolValue(false),
	},
}

var optionIndex = func() map[string]int {
	idx := make(map[string]int, len(options))
	for i, o := range options {
		idx[o.Name] = i
	}
	return idx
}()

// Options returns the recognized options in declaration order.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// Lookup finds an option by name.
func Lookup(name string) (Option, bool) {
	i, ok := optionIndex[name]
	if !ok {
		return Option{}, false
	}
	return options[i], true
}

// Allows reports whether s is an accepted value. Options without a
// closed choice set accept anything.
func (o Option) Allows(s string) bool {
	if len(o.Choices) == 0 {
		return true
	}
	for _, c := range o.Choices {
		if c == s {
			return true
		}
	}
	return false
}
