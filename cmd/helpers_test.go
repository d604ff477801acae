package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const chatExport = `1/2/2024, 10:00 - Alice: Hi there
1/2/2024, 10:01 - Bob: Hello
how are you
1/2/2024, 10:02 - Alice: Use my referral code ABC123
1/3/2024, 08:00 - Alice: Good morning`

func writeTempFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// newTestCmd returns a command wired to in-memory streams with the
// per-command flags the run functions read.
func newTestCmd(out, errOut *bytes.Buffer, stdin string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.Flags().String("charset", "", "input charset")
	cmd.Flags().String("color", "auto", "color transcripts")
	cmd.Flags().Bool("no-color", true, "disable colored output")
	cmd.Flags().String("group-by", "", "group messages by field")
	cmd.Flags().Int("top", 10, "number of groups")
	return cmd
}

func resetViper(t *testing.T, format string) {
	t.Helper()
	viper.Reset()
	viper.Set("format", format)
	t.Cleanup(viper.Reset)
}
