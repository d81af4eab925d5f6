package test_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// buildCLI builds the kiln CLI binary for testing
func buildCLI(t *testing.T) string {
	t.Helper()

	// Use a shared build directory
	buildDir := filepath.Join("..", "test-dist", "cli-bin")
	if err := os.MkdirAll(buildDir, 0750); err != nil {
		t.Fatalf("Failed to create build dir: %v", err)
	}

	cliPath, err := filepath.Abs(filepath.Join(buildDir, "kiln"))
	if err != nil {
		t.Fatalf("Failed to resolve CLI path: %v", err)
	}

	// Check if already built
	if _, err := os.Stat(cliPath); err == nil {
		return cliPath
	}

	t.Log("Building kiln CLI...")
	cmd := exec.Command("go", "build", "-o", cliPath, "../cmd/kiln") // #nosec G204 -- test code with controlled input
	cmd.Dir = "."

	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build CLI: %v\nOutput: %s", err, output)
	}

	t.Log("CLI built successfully")
	return cliPath
}

// runCLI executes the binary in dir and returns its combined output and
// process exit code
func runCLI(t *testing.T, cliPath, dir string, args ...string) (string, int) {
	t.Helper()

	cmd := exec.Command(cliPath, args...) // #nosec G204 -- test code with controlled input
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err == nil {
		return string(output), 0
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("CLI did not run: %v\nOutput: %s", err, output)
	}
	return string(output), exitErr.ExitCode()
}

// TestCLI_Help tests help output for all commands
func TestCLI_Help(t *testing.T) {
	cliPath := buildCLI(t)
	workDir := t.TempDir()

	commands := []string{
		"",
		"build",
		"resolve-version",
		"locate",
	}

	for _, cmd := range commands {
		t.Run("help_"+cmd, func(t *testing.T) {
			args := []string{"--help"}
			if cmd != "" {
				args = []string{cmd, "--help"}
			}

			output, code := runCLI(t, cliPath, workDir, args...)

			// Help should exit with 0 or 2 (flag usage convention)
			if code != 0 && code != 2 {
				t.Errorf("Help exited with unexpected code: %d", code)
			}
			if !strings.Contains(output, "Usage") && !strings.Contains(output, "Commands") {
				t.Errorf("Expected usage information in help output, got:\n%s", output)
			}
		})
	}
}

// A successful pipeline run must exit 0 and leave the published image behind
func TestCLI_BuildSuccessExitsZero(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping CLI integration test in short mode")
	}

	cliPath := buildCLI(t)
	installStubs(t)
	root := newSourceTree(t)
	outputDir := filepath.Join(t.TempDir(), "dist")

	output, code := runCLI(t, cliPath, t.TempDir(),
		"build",
		"--source-root", root,
		"--output-dir", outputDir,
		"--tag", "v1.2.3",
		"--jobs", "1",
	)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d\nOutput: %s", code, output)
	}

	published := filepath.Join(outputDir, "firmware-v1.2.3.uf2")
	if _, err := os.Stat(published); err != nil {
		t.Errorf("Published image missing at %s: %v", published, err)
	}
	if !strings.Contains(output, "Build successful") {
		t.Errorf("Expected the build summary on stdout, got:\n%s", output)
	}
}

// A missing firmware image must exit with the dedicated status so CI can
// tell it apart from a failed compile
func TestCLI_LocateMissExitsThree(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping CLI integration test in short mode")
	}

	cliPath := buildCLI(t)
	root := newSourceTree(t) // directories exist, no image anywhere

	output, code := runCLI(t, cliPath, t.TempDir(), "locate", "--source-root", root)
	if code != 3 {
		t.Fatalf("Expected exit 3 for a missing image, got %d\nOutput: %s", code, output)
	}
}

// And exit 0 with the resolved path on a hit
func TestCLI_LocateHitExitsZero(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping CLI integration test in short mode")
	}

	cliPath := buildCLI(t)
	root := newSourceTree(t)

	image := filepath.Join(root, "ports", "rp2", "build-RPI_PICO_W", "firmware.uf2")
	if err := os.MkdirAll(filepath.Dir(image), 0750); err != nil {
		t.Fatalf("Failed to create build dir: %v", err)
	}
	if err := os.WriteFile(image, []byte("image"), 0644); err != nil {
		t.Fatalf("Failed to write image: %v", err)
	}

	output, code := runCLI(t, cliPath, t.TempDir(), "locate", "--source-root", root)
	if code != 0 {
		t.Fatalf("Expected exit 0, got %d\nOutput: %s", code, output)
	}
	if !strings.Contains(output, image) {
		t.Errorf("Expected the located path on stdout, got:\n%s", output)
	}
}

// A fatal pipeline failure that is not a missing artifact must exit 1
func TestCLI_SubmoduleFailureExitsOne(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping CLI integration test in short mode")
	}

	cliPath := buildCLI(t)
	installStubs(t)
	t.Setenv("STUB_FAIL_SUBMODULES", "1")
	root := newSourceTree(t)

	output, code := runCLI(t, cliPath, t.TempDir(),
		"build",
		"--source-root", root,
		"--output-dir", filepath.Join(t.TempDir(), "dist"),
		"--tag", "v1.2.3",
		"--jobs", "1",
	)
	if code != 1 {
		t.Fatalf("Expected exit 1 for a fatal build failure, got %d\nOutput: %s", code, output)
	}
	if !strings.Contains(output, "submodule") {
		t.Errorf("Expected the diagnostic to name the failing stage, got:\n%s", output)
	}
}

// Unknown subcommands exit 1 with usage
func TestCLI_UnknownCommand(t *testing.T) {
	cliPath := buildCLI(t)

	output, code := runCLI(t, cliPath, t.TempDir(), "frobnicate")
	if code != 1 {
		t.Errorf("Expected exit 1 for an unknown command, got %d", code)
	}
	if !strings.Contains(output, "Unknown command") {
		t.Errorf("Expected an unknown-command diagnostic, got:\n%s", output)
	}
}
