package cli

import "testing"

func TestExecuteHelp(t *testing.T) {
	defer resetCLI()
	injectRegister()
	rootCmd.SetArgs([]string{"--help"})
	if err := Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}
}
