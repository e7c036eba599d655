package eventstream

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var streamLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z-]*`},
	{Name: "Punct", Pattern: `[\[\],=]`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
})

// entry is one line of the stream.
type entry struct {
	Tune  *int       `  "tune" @Int`
	Meta  *metaEntry `| @@`
	Note  *noteEntry `| "note" @@`
	Rest  *restEntry `| "rest" @@`
	Bar   *barEntry  `| "bar" @@`
	Inert *string    `| @("clef" | "eoln" | "overlay" | "tuplet")`
}

type metaEntry struct {
	Kind        string `@("title" | "composer" | "key" | "unit" | "meter" | "part" | "voice")`
	Text        string `@String`
	SharpsFlats int    `( "sf" "=" @Int )?`
}

type noteEntry struct {
	Duration    int                `@Int`
	Pitches     []int              `"[" ( @Int ","? )* "]"`
	Seq         bool               `@"seq"?`
	Annotations []*annotationEntry `@@*`
}

type restEntry struct {
	Duration    int                `@Int`
	Seq         bool               `@"seq"?`
	Annotations []*annotationEntry `@@*`
}

type barEntry struct {
	Kind        string             `@Ident`
	Dotted      bool               `@"dotted"?`
	Annotations []*annotationEntry `@@*`
}

type annotationEntry struct {
	Repeat bool   `@"repeat"?`
	Text   string `@String`
}

var parser = participle.MustBuild[entry](
	participle.Lexer(streamLexer),
	participle.Unquote("String"),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)
