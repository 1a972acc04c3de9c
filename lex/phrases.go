package lex

import "github.com/asfy8vg8y6bi-cell/Zinc-Coding-Language/token"

// phrases maps a lowercase space-joined word sequence to the token kind it
// folds into. Longest-match is achieved by the fold() scanner trying the
// widest window of pending words first, not by ordering here (spec §4.1,
// §9 "English-phrase operators").
var phrases = map[string]token.Kind{
	"include": token.INCLUDE,
	"define":  token.DEFINE,
	"as":      token.AS,
	"having":  token.HAVING,
	"called":  token.CALLED,
	"end":     token.END,
	"to":      token.TO,
	"with":    token.WITH,
	"and":     token.AND,

	"do the main thing": token.MAIN,

	"there is a":  token.THERE_IS_A,
	"there is an": token.THERE_IS_A,
	"which is":    token.WHICH_IS,
	"set":         token.SET,
	"change":      token.CHANGE,
	"now":         token.NOW,
	"make":        token.MAKE,
	"equal to":    token.EQUAL_TO,
	"let":         token.LET,
	"be":          token.BE,

	"add":      token.ADD,
	"subtract": token.SUBTRACT,
	"multiply": token.MULTIPLY,
	"divide":   token.DIVIDE,
	"increase": token.INCREASE,
	"decrease": token.DECREASE,
	"from":     token.FROM,
	"by":       token.BY,

	"and return a": token.AND_RETURN_A,

	"if":           token.IF,
	"otherwise":    token.OTHERWISE,
	"otherwise if": token.OTHERWISE_IF,
	"then":         token.THEN,
	"while":        token.WHILE,
	"for":          token.FOR,
	"each":         token.EACH,
	"in":           token.IN,
	"down to":      token.DOWN_TO,
	"repeat":       token.REPEAT,
	"times":        token.TIMES,
	"break":        token.BREAK,
	"continue":     token.CONTINUE,
	"return":       token.RETURN,

	"stop the loop":         token.STOP_THE_LOOP,
	"skip to the next one":  token.SKIP_TO_THE_NEXT_ONE,

	"say":     token.SAY,
	"print":   token.SAY,
	"show":    token.SAY,
	"display": token.SAY,

	"and then":    token.AND_THEN,
	"followed by": token.FOLLOWED_BY,

	"ask the user for": token.ASK_THE_USER_FOR,
	"and store it in":  token.AND_STORE_IT_IN,
	"a number":         token.A_NUMBER,
	"a decimal":        token.A_DECIMAL,

	"plus":            token.PLUS,
	"minus":           token.MINUS,
	"divided by":      token.DIVIDED_BY,
	"modulo":          token.MODULO,
	"to the power of": token.TO_THE_POWER_OF,

	"equals":                          token.EQUALS,
	"is":                              token.IS,
	"is not equal to":                 token.IS_NOT_EQUAL_TO,
	"is greater than or equal to":     token.IS_AT_LEAST,
	"is greater than":                 token.IS_GREATER_THAN,
	"is less than or equal to":        token.IS_AT_MOST,
	"is less than":                    token.IS_LESS_THAN,
	"is at least":                     token.IS_AT_LEAST,
	"is at most":                      token.IS_AT_MOST,
	"is between":                      token.IS_BETWEEN,
	"is positive":                     token.IS_POSITIVE,
	"is negative":                     token.IS_NEGATIVE,
	"is zero":                         token.IS_ZERO,
	"is even":                         token.IS_EVEN,
	"is odd":                          token.IS_ODD,
	"is empty":                        token.IS_EMPTY,
	"contains":                        token.CONTAINS,

	"or":  token.OR,
	"not": token.NOT,

	"negative":                 token.NEGATIVE,
	"the square root of":       token.THE_SQUARE_ROOT_OF,
	"the absolute value of":    token.THE_ABSOLUTE_VALUE_OF,
	"the address of":           token.THE_ADDRESS_OF,
	"the value at":             token.THE_VALUE_AT,

	"item number":        token.ITEM_NUMBER,
	"the first item in":  token.THE_FIRST_ITEM_IN,
	"the last item in":   token.THE_LAST_ITEM_IN,
	"the length of":      token.THE_LENGTH_OF,

	"the value of":  token.THE_VALUE_OF,
	"the result of": token.THE_RESULT_OF,

	"allocate space for":   token.ALLOCATE_SPACE_FOR,
	"and call it":          token.AND_CALL_IT,
	"free the memory at":   token.FREE_THE_MEMORY_AT,

	"yes":     token.YES,
	"no":      token.NO,
	"null":    token.NULL_LIT,
	"nothing": token.NOTHING_TYPE,

	"number":     token.NUMBER_TYPE,
	"decimal":    token.DECIMAL_TYPE,
	"text":       token.TEXT_TYPE,
	"character":  token.CHARACTER_TYPE,
	"yes or no":  token.YES_OR_NO_TYPE,
	"pointer to": token.POINTER_TO,
	"list of":    token.LIST_OF,

	"the file called":            token.THE_FILE_CALLED,
	"which opens":                token.WHICH_OPENS,
	"for reading":                token.FOR_READING,
	"for writing":                token.FOR_WRITING,
	"failed to open":             token.FAILED_TO_OPEN,
	"close the file":             token.CLOSE_THE_FILE,
	"there is another line in":   token.THERE_IS_ANOTHER_LINE_IN,
	"read a line from":           token.READ_A_LINE_FROM,

	"open a window sized":    token.OPEN_A_WINDOW_SIZED,
	"close the window":       token.CLOSE_THE_WINDOW,
	"begin drawing":          token.BEGIN_DRAWING,
	"end drawing":            token.END_DRAWING,
	"clear the screen with":  token.CLEAR_THE_SCREEN_WITH,
	"draw a rectangle at":    token.DRAW_A_RECTANGLE_AT,
	"draw text":              token.DRAW_TEXT,
	"the window should close": token.THE_WINDOW_SHOULD_CLOSE,
	"the mouse x position":   token.THE_MOUSE_X_POSITION,
	"the mouse y position":   token.THE_MOUSE_Y_POSITION,
	"the mouse was clicked":  token.THE_MOUSE_WAS_CLICKED,

	"a random number between": token.A_RANDOM_NUMBER_BETWEEN,
}

// maxPhraseWords bounds the widest window fold() tries; the longest entry
// above ("is greater than or equal to") is 6 words.
const maxPhraseWords = 6
