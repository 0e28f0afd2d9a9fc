package signingtool

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"github.com/tokenparty/tparty-client/internal/core/ports"
)

type service struct {
	binPath string
}

// NewService returns a SigningTool backed by an external signer binary
// invoked as `<bin> sign <txhex> <input index> <wif>`. A non-zero exit status
// signals a failed signing attempt.
func NewService(binPath string) ports.SigningTool {
	return &service{binPath}
}

func (s *service) SignInput(
	ctx context.Context, txHex string, index int, privateKeyWIF string,
) (string, error) {
	cmd := exec.CommandContext(
		ctx, s.binPath, "sign", txHex, strconv.Itoa(index), privateKeyWIF,
	)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s: %w", s.binPath, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
