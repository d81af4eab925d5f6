package gateways

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochairo/kiln/internal/domain/entities"
	"github.com/ochairo/kiln/internal/domain/interfaces"
)

func newMakeRunner(root string, jobs int, runner *fakeRunner) *MakeRunner {
	cfg := &entities.BuildConfig{
		SourceRoot: root,
		Board:      entities.BoardPicoW,
		Jobs:       jobs,
	}
	return NewMakeRunner(cfg, runner, &interfaces.NoOpLogger{})
}

func TestMakeRunner_RunsStagesInOrder(t *testing.T) {
	root := t.TempDir()
	runner := &fakeRunner{}

	if err := newMakeRunner(root, 4, runner).BuildStages(context.Background()); err != nil {
		t.Fatalf("BuildStages failed: %v", err)
	}

	if len(runner.calls) != 2 {
		t.Fatalf("Expected 2 stages, got %d", len(runner.calls))
	}

	cross := runner.calls[0]
	if cross.dir != filepath.Join(root, "mpy-cross") {
		t.Errorf("Stage 1 should run in mpy-cross, got %s", cross.dir)
	}
	if cross.name != "make" || strings.Join(cross.args, " ") != "-j 4" {
		t.Errorf("Stage 1 should be 'make -j 4', got %s %v", cross.name, cross.args)
	}

	firmware := runner.calls[1]
	if firmware.dir != filepath.Join(root, "ports", "rp2") {
		t.Errorf("Stage 2 should run in ports/rp2, got %s", firmware.dir)
	}
	joined := strings.Join(firmware.args, " ")
	if !strings.Contains(joined, "BOARD=RPI_PICO_W") {
		t.Errorf("Stage 2 should pass the board, got %v", firmware.args)
	}
	wantCMake := "USER_C_MODULES=" + filepath.Join(root, "lib", "ulab", "code", "micropython.cmake")
	if !strings.Contains(joined, wantCMake) {
		t.Errorf("Stage 2 should pass the ulab integration file, got %v", firmware.args)
	}
}

func TestMakeRunner_CrossCompilerFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{
		onRun: func(dir, _ string, _ []string) error {
			if strings.HasSuffix(dir, "mpy-cross") {
				return errors.New("exit status 2")
			}
			return nil
		},
	}

	err := newMakeRunner(t.TempDir(), 1, runner).BuildStages(context.Background())
	if err == nil {
		t.Fatal("Expected stage 1 failure to be fatal")
	}
	if !strings.Contains(err.Error(), "cross-compiler") {
		t.Errorf("Diagnostic should name the cross-compiler stage, got: %v", err)
	}
	if len(runner.calls) != 1 {
		t.Errorf("Stage 2 must not run after stage 1 fails, got %d calls", len(runner.calls))
	}
}

func TestMakeRunner_FirmwareFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{
		onRun: func(dir, _ string, _ []string) error {
			if strings.HasSuffix(dir, filepath.Join("ports", "rp2")) {
				return errors.New("exit status 2")
			}
			return nil
		},
	}

	err := newMakeRunner(t.TempDir(), 1, runner).BuildStages(context.Background())
	if err == nil {
		t.Fatal("Expected stage 2 failure to be fatal")
	}
	if !strings.Contains(err.Error(), "firmware build") {
		t.Errorf("Diagnostic should name the firmware stage, got: %v", err)
	}
}

// Jobs defaults to the CPU count when unset
func TestMakeRunner_DefaultJobs(t *testing.T) {
	runner := &fakeRunner{}
	if err := newMakeRunner(t.TempDir(), 0, runner).BuildStages(context.Background()); err != nil {
		t.Fatalf("BuildStages failed: %v", err)
	}

	if len(runner.calls[0].args) < 2 || runner.calls[0].args[0] != "-j" || runner.calls[0].args[1] == "0" {
		t.Errorf("Expected a positive -j value, got %v", runner.calls[0].args)
	}
}
