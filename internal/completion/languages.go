package completion

// languageKeywords is a static reserved-keyword table per language, the
// first of the two candidate sources §4.8 names (the second being
// identifiers harvested from the buffer). Languages with no entry (e.g.
// markdown, json) fall back to buffer-harvested identifiers alone.
var languageKeywords = map[string][]string{
	"go": {
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select",
		"struct", "switch", "type", "var",
	},
	"rust": {
		"as", "async", "await", "break", "const", "continue", "crate",
		"dyn", "else", "enum", "extern", "false", "fn", "for", "if",
		"impl", "in", "let", "loop", "match", "mod", "move", "mut", "pub",
		"ref", "return", "self", "Self", "static", "struct", "super",
		"trait", "true", "type", "unsafe", "use", "where", "while",
		"Result", "Option", "Ok", "Err", "Some", "None",
	},
	"python": {
		"and", "as", "assert", "async", "await", "break", "class",
		"continue", "def", "del", "elif", "else", "except", "finally",
		"for", "from", "global", "if", "import", "in", "is", "lambda",
		"nonlocal", "not", "or", "pass", "raise", "return", "try",
		"while", "with", "yield",
	},
	"javascript": {
		"await", "break", "case", "catch", "class", "const", "continue",
		"debugger", "default", "delete", "do", "else", "export",
		"extends", "finally", "for", "function", "if", "import", "in",
		"instanceof", "let", "new", "return", "super", "switch", "this",
		"throw", "try", "typeof", "var", "void", "while", "with", "yield",
	},
	"typescript": {
		"await", "break", "case", "catch", "class", "const", "continue",
		"debugger", "default", "delete", "do", "else", "export",
		"extends", "finally", "for", "function", "if", "implements",
		"import", "in", "instanceof", "interface", "is", "keyof", "let",
		"namespace", "new", "readonly", "return", "super", "switch",
		"this", "throw", "try", "type", "typeof", "var", "void", "while",
		"with", "yield",
	},
	"c": {
		"auto", "break", "case", "char", "const", "continue", "default",
		"do", "double", "else", "enum", "extern", "float", "for", "goto",
		"if", "int", "long", "register", "return", "short", "signed",
		"sizeof", "static", "struct", "switch", "typedef", "union",
		"unsigned", "void", "volatile", "while",
	},
	"cpp": {
		"auto", "break", "case", "catch", "char", "class", "const",
		"const_cast", "continue", "default", "delete", "do",
		"dynamic_cast", "else", "enum", "extern", "float", "for",
		"friend", "goto", "if", "int", "long", "namespace", "new",
		"nullptr", "operator", "private", "protected", "public",
		"register", "reinterpret_cast", "return", "short", "signed",
		"sizeof", "static", "static_cast", "struct", "switch",
		"template", "this", "throw", "try", "typedef", "union",
		"unsigned", "using", "virtual", "void", "volatile", "while",
	},
	"shell": {
		"case", "do", "done", "elif", "else", "esac", "export", "fi",
		"for", "function", "if", "in", "local", "readonly", "return",
		"then", "until", "while",
	},
}
