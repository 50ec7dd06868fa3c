package selfupdate

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
)

// applyUpdate replaces target with binary. The new file is staged next to
// target, checked against wantSum, given target's mode and renamed into
// place. The previous executable is kept as target+".old" until the swap
// succeeds, and restored if it does not.
func applyUpdate(binary []byte, target string, wantSum []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	staged, err := os.CreateTemp(filepath.Dir(target), ".lifecompass-update-*")
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	stagedPath := staged.Name()
	defer func() { _ = os.Remove(stagedPath) }()

	_, werr := staged.Write(binary)
	cerr := staged.Close()
	if werr != nil {
		return fmt.Errorf("write staging file: %w", werr)
	}
	if cerr != nil {
		return fmt.Errorf("close staging file: %w", cerr)
	}

	written, err := os.ReadFile(stagedPath)
	if err != nil {
		return fmt.Errorf("re-read staging file: %w", err)
	}
	if sum := sha256.Sum256(written); !bytes.Equal(sum[:], wantSum) {
		return fmt.Errorf("%w: staging file changed after write", ErrChecksum)
	}
	if err := os.Chmod(stagedPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod staging file: %w", err)
	}

	backup := target + ".old"
	_ = os.Remove(backup)
	if err := os.Rename(target, backup); err != nil {
		return fmt.Errorf("back up current binary: %w", err)
	}
	if err := os.Rename(stagedPath, target); err != nil {
		if rerr := os.Rename(backup, target); rerr != nil {
			return fmt.Errorf("install new binary: %w (restore failed: %v, previous binary is at %s)", err, rerr, backup)
		}
		return fmt.Errorf("install new binary: %w", err)
	}

	// A running Windows executable cannot be deleted; it stays until the
	// next update clears it.
	_ = os.Remove(backup)
	return nil
}
