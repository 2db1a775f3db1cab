package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunFilePrintsOutputAndReturn(t *testing.T) {
	path := writeProgram(t, "main.m", "a = 5;\na += 3;\nprint a;\nreturn a * 2;\n")

	code, stdout, stderr := captureCLI(t, []string{"run", path})
	require.Equal(t, 0, code, "stderr: %s", stderr)
	require.Equal(t, "8\nRETURNED 16\n", stdout)
}

func TestRunShortcutAcceptsSourceFile(t *testing.T) {
	path := writeProgram(t, "main.m", "m = [[1,2];[3,4]];\nprint m';\n")

	code, stdout, _ := captureCLI(t, []string{path})
	require.Equal(t, 0, code)
	require.Equal(t, "[[1, 3]\n [2, 4]]\n", stdout)
}

func TestRunFailsOnTypecheckError(t *testing.T) {
	path := writeProgram(t, "bad.m", "x = [1, 2, 3, 4, 5];\nprint \"never\";\nprint x[10];\n")

	code, stdout, _ := captureCLI(t, []string{"run", path})
	require.Equal(t, 1, code)
	require.Equal(t, "Error in line 3: reference 10 out of bounds for size 5\n", stdout)
}

func TestRunReportsSyntaxError(t *testing.T) {
	path := writeProgram(t, "bad.m", "a = 1\nb = 2;\n")

	code, stdout, _ := captureCLI(t, []string{"run", path})
	require.Equal(t, 1, code)
	require.True(t, strings.HasPrefix(stdout, "Syntax error at line 2"), "stdout: %q", stdout)
}

func TestRunReportsRuntimeError(t *testing.T) {
	path := writeProgram(t, "div.m", "print 1;\nn = 0;\nprint 1 / n;\n")

	code, stdout, _ := captureCLI(t, []string{"run", path})
	require.Equal(t, 1, code)
	require.Equal(t, "1\nRuntime error in line 3: division by zero\n", stdout)
}

func TestRunPrintsTreeFirst(t *testing.T) {
	path := writeProgram(t, "tree.m", "a = 1;\nprint a;\n")

	code, stdout, _ := captureCLI(t, []string{"run", "--tree", path})
	require.Equal(t, 0, code)
	require.Equal(t, "=\n| a\n| 1\nPRINT\n| a\n1\n", stdout)
}

func TestRunMissingFile(t *testing.T) {
	code, _, stderr := captureCLI(t, []string{"run", filepath.Join(t.TempDir(), "missing.m")})
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "failed to load program")
}

func TestRunReadsStdin(t *testing.T) {
	path := writeProgram(t, "stdin.m", "print \"from stdin\";\n")
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	oldStdin := os.Stdin
	os.Stdin = file
	defer func() { os.Stdin = oldStdin }()

	code, stdout, _ := captureCLI(t, []string{"run", "-"})
	require.Equal(t, 0, code)
	require.Equal(t, "from stdin\n", stdout)
}

func TestTreeCommand(t *testing.T) {
	path := writeProgram(t, "tree.m", "for i = 0:2 print i;\n")

	code, stdout, _ := captureCLI(t, []string{"tree", path})
	require.Equal(t, 0, code)
	require.Equal(t, "FOR\n| i\n| RANGE\n| | 0\n| | 2\n| PRINT\n| | i\n", stdout)
}

func TestCheckReportsInArgumentOrder(t *testing.T) {
	good := writeProgram(t, "good.m", "a = eye(2);\n")
	bad := writeProgram(t, "bad.m", "b = c;\nbreak;\n")
	broken := writeProgram(t, "broken.m", "a = ;\n")

	code, stdout, _ := captureCLI(t, []string{"check", bad, good, broken})
	require.Equal(t, 1, code)
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, bad+": Error in line 1: undefined variable c", lines[0])
	require.Equal(t, bad+": Error in line 2: flow keyword break outside loop", lines[1])
	require.Equal(t, good+": ok", lines[2])
	require.True(t, strings.HasPrefix(lines[3], broken+": "+broken+": Syntax error at line 1"), "line: %q", lines[3])
}

func TestCheckReadsStdinOnceForRepeatedDash(t *testing.T) {
	good := writeProgram(t, "good.m", "a = 1;\n")
	stdin := strings.NewReader("a = 1;\nprint b;\n")

	reports := checkFiles([]string{"-", good, "-"}, stdin, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Len(t, reports, 3)
	for _, i := range []int{0, 2} {
		require.False(t, reports[i].ok)
		require.Equal(t, []string{"Error in line 2: undefined variable b"}, reports[i].lines)
	}
	require.True(t, reports[1].ok)
}

func TestConformCommand(t *testing.T) {
	code, stdout, _ := captureCLI(t, []string{"conform", filepath.Join("..", "..", "pkg", "conformance", "testdata")})
	require.Equal(t, 0, code, "stdout: %s", stdout)
	require.Contains(t, stdout, " 0 failed")
}

func TestVersion(t *testing.T) {
	code, stdout, _ := captureCLI(t, []string{"version"})
	require.Equal(t, 0, code)
	require.Equal(t, cliToolVersion+"\n", stdout)
}

func TestRunDefaultUsesManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "matlang.yml"), "name: demo\nmain: src/main.m\n")
	writeFile(t, filepath.Join(dir, "src", "main.m"), "print ones(1, 2);\n")
	chdir(t, dir)

	code, stdout, stderr := captureCLI(t, nil)
	require.Equal(t, 0, code, "stderr: %s", stderr)
	require.Equal(t, "[[1, 1]]\n", stdout)
}

func TestRunDefaultRejectsInvalidManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "matlang.yml"), "name: demo\n")
	chdir(t, dir)

	code, _, stderr := captureCLI(t, nil)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "main must be provided")
}

func TestResolveMatlangHomeEnv(t *testing.T) {
	target := filepath.Join(t.TempDir(), "home")
	t.Setenv("MATLANG_HOME", target)

	got, err := resolveMatlangHome()
	require.NoError(t, err)
	require.Equal(t, target, got)
}

func TestResolveMatlangHomeDefault(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("MATLANG_HOME", "")
	t.Setenv("HOME", tmp)

	got, err := resolveMatlangHome()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, ".matlang"), got)
}

func TestResolveLogLevel(t *testing.T) {
	t.Setenv("MATLANG_LOG", "debug")
	require.Equal(t, slog.LevelDebug, resolveLogLevel(""))
	require.Equal(t, slog.LevelError, resolveLogLevel("error"))

	t.Setenv("MATLANG_LOG", "")
	require.Equal(t, slog.LevelWarn, resolveLogLevel(""))

	_, err := parseLogLevel("loud")
	require.Error(t, err)
}

func TestLogLevelFlag(t *testing.T) {
	fs := newFlagSet("test")
	v := addLogLevelFlag(fs)
	require.NoError(t, fs.Parse([]string{"--log-level", "info"}))
	require.Equal(t, slog.LevelInfo, v.level())
	require.Error(t, newFlagSet("x").Parse([]string{"--nope"}))
}

func TestReplSessionKeepsState(t *testing.T) {
	var out bytes.Buffer
	session := newReplSession(&out, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.False(t, session.handle("v = [1, 2, 3];"))
	require.False(t, session.handle("v[0] = 9;"))
	require.False(t, session.handle("print v[0]; return v;"))
	require.False(t, session.handle("w = v * 2;"))
	require.False(t, session.handle(":vars"))
	require.Equal(t,
		"9\nRETURNED [9, 2, 3]\n"+
			"Error in line 1: cannot MUL vector and int\n"+
			"v: vector[3] = [9, 2, 3]\n",
		out.String())

	out.Reset()
	require.False(t, session.handle(":reset"))
	require.False(t, session.handle("print v;"))
	require.Equal(t, "bindings cleared\nError in line 1: undefined variable v\n", out.String())

	require.True(t, session.handle(":quit"))
}

func TestReplSessionReportsSyntaxAndRuntimeErrors(t *testing.T) {
	var out bytes.Buffer
	session := newReplSession(&out, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.False(t, session.handle("a = ;"))
	require.False(t, session.handle("z = 0; print 1 / z;"))
	require.False(t, session.handle(":bogus"))
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "Syntax error at line 1"))
	require.Equal(t, "Runtime error in line 1: division by zero", lines[1])
	require.Equal(t, "unknown command :bogus. Type :quit to exit.", lines[2])
}

func writeProgram(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	writeFile(t, path, contents)
	return path
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

func captureCLI(t *testing.T, args []string) (int, string, string) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("stdout pipe: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("stderr pipe: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code := run(args)

	if err := wOut.Close(); err != nil {
		t.Fatalf("stdout close: %v", err)
	}
	if err := wErr.Close(); err != nil {
		t.Fatalf("stderr close: %v", err)
	}

	os.Stdout = stdout
	os.Stderr = stderr

	outBytes, err := io.ReadAll(rOut)
	if err != nil {
		t.Fatalf("stdout read: %v", err)
	}
	errBytes, err := io.ReadAll(rErr)
	if err != nil {
		t.Fatalf("stderr read: %v", err)
	}
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
