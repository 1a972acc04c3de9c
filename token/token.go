// Package token defines the lexical token kinds produced by the lexer and
// consumed by the parser.
package token

import "github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/report"

// Kind classifies a Token.
type Kind int

const (
	EOF Kind = iota
	EOL

	IDENT
	INT
	DECIMAL
	STRING
	CHAR

	// Punctuation
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	COLON
	COMMA
	DOT
	POSSESSIVE // 's

	// Raw-C passthrough captured whole by the parser's C-fallback rule.
	RAW_C

	// Single- and multi-word keywords/operators. Most of these are folded
	// from several words into one token by the lexer's phrase table (see
	// lex.phrases); a handful (PLUS, MINUS, ...) are single words.
	INCLUDE
	DEFINE
	AS
	HAVING
	CALLED
	END
	TO
	WITH
	AND
	AND_RETURN_A // "and return a"
	MAIN // "do the main thing"

	THERE_IS_A // "there is a" / "there is an"
	WHICH_IS   // "which is"
	SET
	CHANGE
	NOW
	MAKE
	EQUAL_TO
	LET
	BE

	ADD
	SUBTRACT
	MULTIPLY
	DIVIDE
	INCREASE
	DECREASE
	FROM
	BY

	IF
	OTHERWISE
	OTHERWISE_IF
	THEN
	WHILE
	FOR
	EACH
	IN
	DOWN_TO
	REPEAT
	TIMES
	BREAK
	CONTINUE
	RETURN

	SAY
	AND_THEN
	FOLLOWED_BY
	ASK_THE_USER_FOR
	AND_STORE_IT_IN
	A_NUMBER
	A_DECIMAL
	TEXT

	// Operators (expression)
	PLUS
	MINUS
	TIMES_OP
	DIVIDED_BY
	MODULO
	TO_THE_POWER_OF

	EQUALS
	IS
	IS_NOT_EQUAL_TO
	IS_GREATER_THAN
	IS_LESS_THAN
	IS_AT_LEAST
	IS_AT_MOST
	IS_BETWEEN
	IS_POSITIVE
	IS_NEGATIVE
	IS_ZERO
	IS_EVEN
	IS_ODD
	IS_EMPTY
	CONTAINS

	OR
	AND_OP
	NOT

	NEGATIVE
	THE_SQUARE_ROOT_OF
	THE_ABSOLUTE_VALUE_OF
	THE_ADDRESS_OF
	THE_VALUE_AT

	ITEM_NUMBER
	THE_FIRST_ITEM_IN
	THE_LAST_ITEM_IN
	THE_LENGTH_OF

	THE_VALUE_OF
	THE_RESULT_OF

	ALLOCATE_SPACE_FOR
	AND_CALL_IT
	FREE_THE_MEMORY_AT

	STOP_THE_LOOP
	SKIP_TO_THE_NEXT_ONE

	YES
	NO
	NULL_LIT

	// Struct/pointer/array type phrases
	NUMBER_TYPE
	DECIMAL_TYPE
	TEXT_TYPE
	CHARACTER_TYPE
	YES_OR_NO_TYPE
	POINTER_TO
	LIST_OF
	NOTHING_TYPE

	// File I/O
	THE_FILE_CALLED
	WHICH_OPENS
	FOR_READING
	FOR_WRITING
	FAILED_TO_OPEN
	CLOSE_THE_FILE
	THERE_IS_ANOTHER_LINE_IN
	READ_A_LINE_FROM

	// Graphics (raylib) builtins
	OPEN_A_WINDOW_SIZED
	CLOSE_THE_WINDOW
	BEGIN_DRAWING
	END_DRAWING
	CLEAR_THE_SCREEN_WITH
	DRAW_A_RECTANGLE_AT
	DRAW_TEXT
	THE_WINDOW_SHOULD_CLOSE
	THE_MOUSE_X_POSITION
	THE_MOUSE_Y_POSITION
	THE_MOUSE_WAS_CLICKED

	A_RANDOM_NUMBER_BETWEEN
)

// Token is a single classified lexical unit.
type Token struct {
	Kind  Kind
	Value string // verbatim source text (identifiers/raw-C) or folded phrase
	IVal  int64
	FVal  float64
	SVal  string // resolved string/char literal value
	Span  *report.TextSpan
}
