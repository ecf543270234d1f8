package regression

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
)

// ExecutionTest runs the solver on a simulation directory before its
// results are compared, synthesizing the mpiexec invocation for
// parallel runs.
type ExecutionTest struct {
	// ExecPath is the solver executable.
	ExecPath string
	// SimPath is the simulation working directory.
	SimPath string
	// Procs is the MPI process count. Zero runs the solver serially.
	Procs int
}

// Command returns the program and arguments to launch.
func (e ExecutionTest) Command() (string, []string, error) {
	if e.Procs <= 0 {
		return e.ExecPath, nil, nil
	}
	switch runtime.GOOS {
	case "windows":
		// mpiexec on Windows spawns remote daemons unless restricted
		// to the local host.
		return "mpiexec", []string{"--localonly", "-np", strconv.Itoa(e.Procs), e.ExecPath}, nil
	case "linux", "darwin":
		return "mpiexec", []string{"-np", strconv.Itoa(e.Procs), e.ExecPath}, nil
	default:
		return "", nil, fmt.Errorf("regression: unsupported operating system %q", runtime.GOOS)
	}
}

// Run validates the configured paths and executes the solver in the
// simulation directory, streaming its output to the current process.
func (e ExecutionTest) Run() error {
	if e.ExecPath == "" {
		return fmt.Errorf("regression: path to executable not provided")
	}
	if _, err := os.Stat(e.ExecPath); err != nil {
		return fmt.Errorf("regression: invalid executable path: %w", err)
	}
	if e.SimPath == "" {
		return fmt.Errorf("regression: path to simulation not provided")
	}
	if _, err := os.Stat(e.SimPath); err != nil {
		return fmt.Errorf("regression: invalid simulation path: %w", err)
	}

	program, args, err := e.Command()
	if err != nil {
		return err
	}
	cmd := exec.Command(program, args...)
	cmd.Dir = e.SimPath
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("regression: solver execution failed: %w", err)
	}
	return nil
}
