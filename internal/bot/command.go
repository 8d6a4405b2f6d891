package bot

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Command is a parsed "/name key=value ..." message.
type Command struct {
	Name string
	Args map[string]string
}

// Get returns the value of key, or "" when absent.
func (c Command) Get(key string) string {
	return c.Args[key]
}

var errNotCommand = errors.New("not a command")

// ParseCommand reads the command entity of msg and its key=value arguments.
// Values may be double-quoted to contain spaces. Repeated keys keep the last value.
func ParseCommand(msg *tgbotapi.Message) (Command, error) {
	if msg == nil || !msg.IsCommand() {
		return Command{}, errNotCommand
	}

	tokens, err := tokenize(msg.CommandArguments())
	if err != nil {
		return Command{}, err
	}

	cmd := Command{Name: strings.ToLower(msg.Command()), Args: map[string]string{}}
	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			return Command{}, fmt.Errorf("argument %q must look like key=value", tok)
		}
		cmd.Args[strings.ToLower(key)] = value
	}
	return cmd, nil
}

func tokenize(s string) ([]string, error) {
	var (
		tokens  []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case unicode.IsSpace(r) && !quoted:
			if started {
				tokens = append(tokens, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if quoted {
		return nil, errors.New("unterminated quote")
	}
	if started {
		tokens = append(tokens, current.String())
	}
	return tokens, nil
}
