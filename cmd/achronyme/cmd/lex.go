package cmd

import (
	"fmt"
	"os"

	"github.com/eddndev/achronyme/internal/lexer"
	"github.com/spf13/cobra"
)

var (
	lexExpr    string
	showPos    bool
	showType   bool
	onlyErrors bool
)

var tokenNames = map[lexer.TokenType]string{
	lexer.ILLEGAL: "ILLEGAL", lexer.EOF: "EOF",
	lexer.IDENT: "IDENT", lexer.NUMBER: "NUMBER", lexer.IMAGINARY: "IMAGINARY", lexer.STRING: "STRING",
	lexer.TRUE: "TRUE", lexer.FALSE: "FALSE", lexer.NULL: "NULL",
	lexer.LET: "LET", lexer.MUT: "MUT", lexer.TYPE: "TYPE", lexer.DO: "DO",
	lexer.WHILE: "WHILE", lexer.FOR: "FOR", lexer.IN: "IN",
	lexer.TRY: "TRY", lexer.CATCH: "CATCH", lexer.THROW: "THROW",
	lexer.MATCH: "MATCH", lexer.GENERATE: "GENERATE", lexer.YIELD: "YIELD",
	lexer.RETURN: "RETURN", lexer.REC: "REC", lexer.SELF: "SELF",
	lexer.IMPORT: "IMPORT", lexer.EXPORT: "EXPORT",
	lexer.PLUS: "PLUS", lexer.MINUS: "MINUS", lexer.STAR: "STAR", lexer.SLASH: "SLASH",
	lexer.PERCENT: "PERCENT", lexer.CARET: "CARET", lexer.BANG: "BANG", lexer.ASSIGN: "ASSIGN",
	lexer.EQ: "EQ", lexer.NEQ: "NEQ", lexer.LT: "LT", lexer.LTE: "LTE", lexer.GT: "GT", lexer.GTE: "GTE",
	lexer.AND: "AND", lexer.OR: "OR", lexer.ARROW: "ARROW", lexer.UNDIRECTED: "UNDIRECTED",
	lexer.FATARROW: "FATARROW", lexer.QUESTION: "QUESTION",
	lexer.LPAREN: "LPAREN", lexer.RPAREN: "RPAREN", lexer.LBRACE: "LBRACE", lexer.RBRACE: "RBRACE",
	lexer.LBRACKET: "LBRACKET", lexer.RBRACKET: "RBRACKET", lexer.COMMA: "COMMA", lexer.COLON: "COLON",
	lexer.SEMI: "SEMI", lexer.DOT: "DOT", lexer.DOTDOT: "DOTDOT", lexer.ELLIPSIS: "ELLIPSIS",
	lexer.PIPE: "PIPE", lexer.UNDERSCORE: "UNDERSCORE",
}

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an Achronyme file or expression",
	Long: `Tokenize (lex) an Achronyme program and print the resulting tokens.

Examples:
  achronyme lex script.soc
  achronyme lex -e "let x = 1"
  achronyme lex --show-type --show-pos script.soc
  achronyme lex --only-errors script.soc`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexExpr, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexScript(_ *cobra.Command, args []string) error {
	in, err := resolveInput(lexExpr, args)
	if err != nil {
		return err
	}

	l := lexer.New(in.source)
	tokenCount, errorCount := 0, 0
	for {
		tok := l.NextToken()
		if onlyErrors && tok.Type != lexer.ILLEGAL {
			if tok.Type == lexer.EOF {
				break
			}
			continue
		}

		tokenCount++
		if tok.Type == lexer.ILLEGAL {
			errorCount++
		}
		printToken(tok)
		if tok.Type == lexer.EOF {
			break
		}
	}

	if verbose {
		fmt.Printf("---\ntotal tokens: %d\n", tokenCount)
		if errorCount > 0 {
			fmt.Printf("errors: %d\n", errorCount)
		}
	}

	if onlyErrors && errorCount > 0 {
		return failWith(ExitParse, fmt.Errorf("found %d illegal token(s)", errorCount))
	}
	return nil
}

func printToken(tok lexer.Token) {
	var out string
	if showType {
		out = fmt.Sprintf("[%-10s]", tokenNames[tok.Type])
	}
	switch tok.Type {
	case lexer.EOF:
		out += " EOF"
	case lexer.ILLEGAL:
		out += fmt.Sprintf(" ILLEGAL: %q", tok.Literal)
	default:
		out += fmt.Sprintf(" %q", tok.Literal)
	}
	if showPos {
		out += fmt.Sprintf(" @%s", tok.Pos.String())
	}
	fmt.Fprintln(os.Stdout, out)
}
