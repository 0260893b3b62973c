package srcfix

import (
	"fmt"
	"os"

	"github.com/neovim/go-client/nvim"
)

// NvimReloader tells a running Neovim instance to pick up files the batch
// rewrote, so open buffers do not go stale.
type NvimReloader struct {
	v *nvim.Nvim
}

// NewNvimReloader connects to the Neovim instance named by
// $NVIM_LISTEN_ADDRESS. Returns nil without error when the variable is
// unset; buffer reload is best effort.
func NewNvimReloader() (*NvimReloader, error) {
	addr := os.Getenv("NVIM_LISTEN_ADDRESS")
	if addr == "" {
		return nil, nil
	}

	v, err := nvim.Dial(addr)
	if err != nil {
		return nil, fmt.Errorf("could not reach nvim at %s: %w", addr, err)
	}
	return &NvimReloader{v: v}, nil
}

func (m *NvimReloader) Close() {
	if m.v != nil {
		m.v.Close()
	}
}

// Reload runs checktime so Neovim re-reads any buffer whose backing file
// changed on disk.
func (m *NvimReloader) Reload() error {
	return m.v.Command("checktime")
}
