package parser

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return itoa(p.Line) + ":" + itoa(p.Column)
}

// itoa avoids pulling strconv into span formatting.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [12]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment
	TokenDocComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenLongLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenTrue
	TokenFalse
	TokenNull

	// Keywords
	TokenAbstract
	TokenAssert
	TokenBoolean
	TokenBreak
	TokenByte
	TokenCase
	TokenCatch
	TokenChar
	TokenClass
	TokenConst
	TokenContinue
	TokenDefault
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenExtends
	TokenFastReturn
	TokenFinal
	TokenFinally
	TokenFloat
	TokenFor
	TokenGoto
	TokenIf
	TokenImplements
	TokenImport
	TokenInstanceof
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenNew
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSuper
	TokenSwitch
	TokenSynchronized
	TokenThis
	TokenThrow
	TokenThrows
	TokenTransient
	TokenTry
	TokenVoid
	TokenVolatile
	TokenWhile

	// Contextual keywords
	TokenVar
	TokenYield
	TokenRecord
	TokenSealed
	TokenNonSealed
	TokenPermits
	TokenWhen
	TokenModule
	TokenOpen
	TokenRequires
	TokenExports
	TokenOpens
	TokenUses
	TokenProvides
	TokenTo
	TokenWith
	TokenTransitive

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenColonColon

	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenQuestion
	TokenColon
	TokenArrow
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
	TokenDocComment:    "DocComment",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenLongLiteral:   "LongLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTextBlock:     "TextBlock",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenNull:          "null",
	TokenAbstract:      "abstract",
	TokenAssert:        "assert",
	TokenBoolean:       "boolean",
	TokenBreak:         "break",
	TokenByte:          "byte",
	TokenCase:          "case",
	TokenCatch:         "catch",
	TokenChar:          "char",
	TokenClass:         "class",
	TokenConst:         "const",
	TokenContinue:      "continue",
	TokenDefault:       "default",
	TokenDo:            "do",
	TokenDouble:        "double",
	TokenElse:          "else",
	TokenEnum:          "enum",
	TokenExtends:       "extends",
	TokenFastReturn:    "fastreturn",
	TokenFinal:         "final",
	TokenFinally:       "finally",
	TokenFloat:         "float",
	TokenFor:           "for",
	TokenGoto:          "goto",
	TokenIf:            "if",
	TokenImplements:    "implements",
	TokenImport:        "import",
	TokenInstanceof:    "instanceof",
	TokenInt:           "int",
	TokenInterface:     "interface",
	TokenLong:          "long",
	TokenNative:        "native",
	TokenNew:           "new",
	TokenPackage:       "package",
	TokenPrivate:       "private",
	TokenProtected:     "protected",
	TokenPublic:        "public",
	TokenReturn:        "return",
	TokenShort:         "short",
	TokenStatic:        "static",
	TokenStrictfp:      "strictfp",
	TokenSuper:         "super",
	TokenSwitch:        "switch",
	TokenSynchronized:  "synchronized",
	TokenThis:          "this",
	TokenThrow:         "throw",
	TokenThrows:        "throws",
	TokenTransient:     "transient",
	TokenTry:           "try",
	TokenVoid:          "void",
	TokenVolatile:      "volatile",
	TokenWhile:         "while",
	TokenVar:           "var",
	TokenYield:         "yield",
	TokenRecord:        "record",
	TokenSealed:        "sealed",
	TokenNonSealed:     "non-sealed",
	TokenPermits:       "permits",
	TokenWhen:          "when",
	TokenModule:        "module",
	TokenOpen:          "open",
	TokenRequires:      "requires",
	TokenExports:       "exports",
	TokenOpens:         "opens",
	TokenUses:          "uses",
	TokenProvides:      "provides",
	TokenTo:            "to",
	TokenWith:          "with",
	TokenTransitive:    "transitive",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenEllipsis:      "...",
	TokenAt:            "@",
	TokenColonColon:    "::",
	TokenAssign:        "=",
	TokenEQ:            "==",
	TokenNE:            "!=",
	TokenLT:            "<",
	TokenLE:            "<=",
	TokenGT:            ">",
	TokenGE:            ">=",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenNot:           "!",
	TokenBitAnd:        "&",
	TokenBitOr:         "|",
	TokenBitXor:        "^",
	TokenBitNot:        "~",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenUShr:          ">>>",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenQuestion:      "?",
	TokenColon:         ":",
	TokenArrow:         "->",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
	TokenUShrAssign:    ">>>=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is an immutable lexical unit. Radix is 0 except on numeric
// literals, where it records the base (2, 8, 10, or 16) used for
// digit and range validation.
type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	Radix   int
}

var keywords = map[string]TokenKind{
	"abstract":     TokenAbstract,
	"assert":       TokenAssert,
	"boolean":      TokenBoolean,
	"break":        TokenBreak,
	"byte":         TokenByte,
	"case":         TokenCase,
	"catch":        TokenCatch,
	"char":         TokenChar,
	"class":        TokenClass,
	"const":        TokenConst,
	"continue":     TokenContinue,
	"default":      TokenDefault,
	"do":           TokenDo,
	"double":       TokenDouble,
	"else":         TokenElse,
	"enum":         TokenEnum,
	"extends":      TokenExtends,
	"fastreturn":   TokenFastReturn,
	"final":        TokenFinal,
	"finally":      TokenFinally,
	"float":        TokenFloat,
	"for":          TokenFor,
	"goto":         TokenGoto,
	"if":           TokenIf,
	"implements":   TokenImplements,
	"import":       TokenImport,
	"instanceof":   TokenInstanceof,
	"int":          TokenInt,
	"interface":    TokenInterface,
	"long":         TokenLong,
	"native":       TokenNative,
	"new":          TokenNew,
	"package":      TokenPackage,
	"private":      TokenPrivate,
	"protected":    TokenProtected,
	"public":       TokenPublic,
	"return":       TokenReturn,
	"short":        TokenShort,
	"static":       TokenStatic,
	"strictfp":     TokenStrictfp,
	"super":        TokenSuper,
	"switch":       TokenSwitch,
	"synchronized": TokenSynchronized,
	"this":         TokenThis,
	"throw":        TokenThrow,
	"throws":       TokenThrows,
	"transient":    TokenTransient,
	"try":          TokenTry,
	"void":         TokenVoid,
	"volatile":     TokenVolatile,
	"while":        TokenWhile,
	"true":         TokenTrue,
	"false":        TokenFalse,
	"null":         TokenNull,
	"var":          TokenVar,
	"yield":        TokenYield,
	"record":       TokenRecord,
	"sealed":       TokenSealed,
	"permits":      TokenPermits,
	"when":         TokenWhen,
	"module":       TokenModule,
	"open":         TokenOpen,
	"requires":     TokenRequires,
	"exports":      TokenExports,
	"opens":        TokenOpens,
	"uses":         TokenUses,
	"provides":     TokenProvides,
	"to":           TokenTo,
	"with":         TokenWith,
	"transitive":   TokenTransitive,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// isLaxIdentifier reports whether kind can stand where an identifier is
// expected. Contextual keywords remain usable as plain names.
func isLaxIdentifier(kind TokenKind) bool {
	switch kind {
	case TokenIdent,
		TokenModule, TokenOpen, TokenRequires, TokenTransitive,
		TokenExports, TokenOpens, TokenTo, TokenUses, TokenProvides, TokenWith,
		TokenVar, TokenYield, TokenRecord, TokenSealed, TokenNonSealed,
		TokenPermits, TokenWhen:
		return true
	}
	return false
}

func isPrimitiveType(kind TokenKind) bool {
	switch kind {
	case TokenBoolean, TokenByte, TokenChar, TokenShort,
		TokenInt, TokenLong, TokenFloat, TokenDouble:
		return true
	}
	return false
}
