package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tokenparty/tparty-client/internal/core/ports"
)

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading operator answers from stdin.
func NewPrompter() ports.Prompter {
	return &prompter{bufio.NewReader(os.Stdin), os.Stdout}
}

func (p *prompter) ConfirmSignAndBroadcast(unsignedHex string) (bool, error) {
	fmt.Fprint(p.out, "Sign and broadcast? (y/N) ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(line) == "y", nil
}

func (p *prompter) PrivateKey(source string) (string, error) {
	fmt.Fprintf(
		p.out,
		"Source address not in wallet. Enter the private key in WIF format for %s: ",
		source,
	)
	line, err := p.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
