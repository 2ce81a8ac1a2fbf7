package listfile

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	Space TokenType = iota
	Newline
	Identifier
	ParenOpen
	ParenClose
	ArgumentUnquoted
	ArgumentQuoted
	CommentBlock
	BadCharacter
	EndOfFile
)

var tokenNames = [...]string{
	Space:            "Space",
	Newline:          "Newline",
	Identifier:       "Identifier",
	ParenOpen:        "ParenOpen",
	ParenClose:       "ParenClose",
	ArgumentUnquoted: "ArgumentUnquoted",
	ArgumentQuoted:   "ArgumentQuoted",
	CommentBlock:     "CommentBlock",
	BadCharacter:     "BadCharacter",
	EndOfFile:        "EndOfFile",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenNames) {
		return "Unknown"
	}
	return tokenNames[t]
}

// Token is a lexeme with the position of its first character.
type Token struct {
	Type   TokenType
	Text   string
	Length uint
	Line   uint
	Column uint
}

// Pos returns the token start as a present position.
func (t Token) Pos() Pos {
	return At(t.Line, t.Column)
}
