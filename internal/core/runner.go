package core

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os/exec"
	"syscall"
	"time"
)

type CmdSpec struct {
	Path  string
	Args  []string
	Stdin io.Reader

	// Stdout receives the raw stdout bytes. JSON payloads must not be split
	// into lines, so this is a writer rather than a line callback.
	Stdout     io.Writer
	StderrLine func(string)
}

type CmdResult struct {
	ExitCode int
	PID      int
	Duration time.Duration
}

// Run starts spec and blocks until it exits. On ctx cancellation the whole
// process group gets SIGINT, then SIGTERM, then SIGKILL.
func Run(ctx context.Context, spec CmdSpec) (CmdResult, error) {
	start := time.Now()

	cmd := exec.Command(spec.Path, spec.Args...)
	cmd.Stdin = spec.Stdin
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return CmdResult{}, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return CmdResult{}, err
	}

	if err := cmd.Start(); err != nil {
		return CmdResult{}, err
	}
	pid := cmd.Process.Pid

	stdoutDone := make(chan struct{})
	stderrDone := make(chan struct{})
	go copyRaw(stdout, spec.Stdout, stdoutDone)
	go streamLines(stderr, spec.StderrLine, stderrDone)

	// Wait must not run before the pipes are drained.
	waitDone := make(chan error, 1)
	go func() {
		<-stdoutDone
		<-stderrDone
		waitDone <- cmd.Wait()
	}()

	select {
	case err := <-waitDone:
		return finalizeResult(err, pid, time.Since(start))
	case <-ctx.Done():
	}

	for _, sig := range []syscall.Signal{syscall.SIGINT, syscall.SIGTERM} {
		_ = syscall.Kill(-pid, sig)
		select {
		case err := <-waitDone:
			return CmdResult{ExitCode: exitCodeFromErr(err), PID: pid, Duration: time.Since(start)}, ctx.Err()
		case <-time.After(3 * time.Second):
		}
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
	err = <-waitDone
	return CmdResult{ExitCode: exitCodeFromErr(err), PID: pid, Duration: time.Since(start)}, ctx.Err()
}

func copyRaw(r io.Reader, w io.Writer, done chan<- struct{}) {
	defer close(done)
	if w == nil {
		w = io.Discard
	}
	_, _ = io.Copy(w, r)
}

func streamLines(r io.Reader, onLine func(string), done chan<- struct{}) {
	defer close(done)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)
	for scanner.Scan() {
		if onLine != nil {
			onLine(scanner.Text())
		}
	}
	// Keep draining so the child never blocks on a full pipe.
	_, _ = io.Copy(io.Discard, r)
}

func finalizeResult(waitErr error, pid int, dur time.Duration) (CmdResult, error) {
	res := CmdResult{ExitCode: exitCodeFromErr(waitErr), PID: pid, Duration: dur}
	if waitErr == nil {
		return res, nil
	}
	return res, waitErr
}

func exitCodeFromErr(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if ws, ok := ee.Sys().(syscall.WaitStatus); ok {
			return ws.ExitStatus()
		}
	}
	return 1
}
