package di

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"resume_optimizer/internal/feature/analysis/adapters/gemini"
)

// ErrAPIKeyRequired はAPIキーが設定されておらず、対話入力もできない場合のエラーです。
var ErrAPIKeyRequired = errors.New("GEMINI_API_KEY is required: set it in the environment or .env")

// keyPrompter は端末からAPIキーを非表示で読み込みます。
type keyPrompter struct {
	fd           int
	out          io.Writer
	isTerminal   func(fd int) bool
	readPassword func(fd int) ([]byte, error)
}

func defaultPrompter() keyPrompter {
	return keyPrompter{
		fd:           int(os.Stdin.Fd()),
		out:          os.Stderr,
		isTerminal:   term.IsTerminal,
		readPassword: term.ReadPassword,
	}
}

// EnsureAPIKey はcfgにAPIキーが無ければ端末で入力を求めます。
// 標準入力が端末でない場合は ErrAPIKeyRequired を返します。
func EnsureAPIKey(cfg *gemini.Config) error {
	return defaultPrompter().ensure(cfg)
}

func (p keyPrompter) ensure(cfg *gemini.Config) error {
	if cfg.APIKey != "" {
		return nil
	}
	if !p.isTerminal(p.fd) {
		return ErrAPIKeyRequired
	}

	fmt.Fprint(p.out, "GEMINI_API_KEY is not set. Enter your Gemini API key: ")
	b, err := p.readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return fmt.Errorf("failed to read api key: %w", err)
	}

	key := strings.TrimSpace(string(b))
	if key == "" {
		return ErrAPIKeyRequired
	}
	cfg.APIKey = key
	return nil
}
